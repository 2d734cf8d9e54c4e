package common

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	l "github.com/op/go-logging"
)

// SetupLOG sets up logger with the correct parameters
func SetupLOG(logger *l.Logger, logLevel string, out io.Writer) {
	hostname, _ := os.Hostname()
	fileFormat := l.MustStringFormatter(
		`%{color}%{time:15:04:05.000} ` + hostname +
			` %{shortfunc} ▶ %{level:.4s} %{id:03x}%{color:reset} %{message}`,
	)

	level, err := l.LogLevel(logLevel)
	if err != nil {
		logger.Fatal(err)
	}
	var backend *l.LogBackend
	if out != nil {
		backend = l.NewLogBackend(out, "", 0)
	} else {
		backend = l.NewLogBackend(os.Stderr, "", 0)
	}

	oBF := l.NewBackendFormatter(backend, fileFormat)

	backendLeveled := l.SetBackend(oBF)
	backendLeveled.SetLevel(level, "")
	logger.SetBackend(backendLeveled)
}

// GetGroupIDByName returns the group ID for the given grpName.
func GetGroupIDByName(grpName string) (int, error) {
	f, err := os.Open(GroupFilePath)
	if err != nil {
		return -1, err
	}
	defer f.Close()
	br := bufio.NewReader(f)
	for {
		s, err := br.ReadString('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			return -1, err
		}
		p := strings.Split(s, ":")
		if len(p) >= 3 && p[0] == grpName {
			return strconv.Atoi(p[2])
		}
	}
	return -1, fmt.Errorf("group %q not found", grpName)
}

// ParseDuty converts s into a PWM duty cycle, rejecting values outside 0..255.
func ParseDuty(s string) (byte, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duty %q: %s", s, err)
	}
	return DutyFromInt(v)
}

// DutyFromInt range checks a duty cycle supplied as an int.
func DutyFromInt(v int) (byte, error) {
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("duty %d out of range 0..255", v)
	}
	return byte(v), nil
}
