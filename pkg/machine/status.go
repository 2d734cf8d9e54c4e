package machine

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/JebManMan/MeBot/common"
)

const (
	maxLogs = 16
)

type StatusCode int

const (
	OK      StatusCode = 0
	Warning StatusCode = -1
	Failure StatusCode = -2
	Info    StatusCode = -4
)

func (sc StatusCode) String() string {
	switch sc {
	case OK:
		return "OK"
	case Warning:
		return "Warning"
	case Failure:
		return "Failure"
	case Info:
		return "Info"
	default:
		return "Unknown code"
	}
}

type Status struct {
	Code StatusCode `json:"code"`
	Msg  string     `json:"msg"`
}

func NewStatusOK(info string) Status {
	return Status{Code: OK, Msg: info}
}

func (s Status) String() string {
	if s.Msg == "" {
		return s.Code.String()
	}
	return fmt.Sprintf("%s - %s", s.Code, s.Msg)
}

type statusLog struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// MachineStatus is a ring buffer of the last maxLogs status entries.
type MachineStatus struct {
	Log     []*statusLog `json:"log,omitempty"`
	Index   int          `json:"index"`
	indexMU sync.RWMutex
}

func (e *MachineStatus) lastIndex() int {
	lastIndex := e.Index - 1
	if lastIndex < 0 {
		return maxLogs - 1
	}
	return lastIndex
}

func (e *MachineStatus) getAndIncIdx() int {
	idx := e.Index
	e.Index++
	if e.Index >= maxLogs {
		e.Index = 0
	}
	return idx
}

func (e *MachineStatus) add(s Status) {
	e.indexMU.Lock()
	defer e.indexMU.Unlock()
	entry := &statusLog{Status: s, Timestamp: time.Now()}
	idx := e.getAndIncIdx()
	if len(e.Log) < maxLogs {
		e.Log = append(e.Log, entry)
	} else {
		e.Log[idx] = entry
	}
}

// Code returns the code of the latest entry, OK when empty.
func (e *MachineStatus) Code() StatusCode {
	e.indexMU.RLock()
	defer e.indexMU.RUnlock()
	if len(e.Log) > 0 {
		if last := e.Log[e.lastIndex()]; last != nil {
			return last.Status.Code
		}
	}
	return OK
}

func (e *MachineStatus) String() string {
	return e.Code().String()
}

// Entries returns the log lines, newest first.
func (e *MachineStatus) Entries() []string {
	e.indexMU.RLock()
	defer e.indexMU.RUnlock()
	logs := []string{}
	if len(e.Log) == 0 {
		return logs
	}
	for i := e.lastIndex(); ; i-- {
		if i < 0 {
			i = maxLogs - 1
		}
		if i < len(e.Log) && e.Log[i] != nil {
			logs = append(logs, fmt.Sprintf("%s - %s",
				e.Log[i].Timestamp.Format(common.RFC3339Milli), e.Log[i].Status))
		}
		if i == e.Index {
			break
		}
	}
	return logs
}

func (e *MachineStatus) DumpLog() string {
	logs := e.Entries()
	if len(logs) == 0 {
		return OK.String()
	}
	return strings.Join(logs, "\n")
}
