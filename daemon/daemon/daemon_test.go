package daemon

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/JebManMan/MeBot/common"
	"github.com/JebManMan/MeBot/common/adaptorapi"
	"github.com/JebManMan/MeBot/common/backend"
	"github.com/JebManMan/MeBot/common/behaviorapi"
	"github.com/JebManMan/MeBot/common/types"
	"github.com/JebManMan/MeBot/pkg/adaptors"
	"github.com/JebManMan/MeBot/pkg/behaviors"
	"github.com/JebManMan/MeBot/pkg/drivers"
	"github.com/JebManMan/MeBot/pkg/machine"
)

var _ backend.MebotDaemonBackend = (*Daemon)(nil)

func createConfig() *Config {
	config := NewConfig()
	config.Machine = &machine.Conf{
		MachineID:    "daemon-test",
		TickInterval: 1,
		Adaptor:      adaptorapi.AdaptorConfEnvelope{Type: adaptors.Adaptor_UnitTest, ID: "fake"},
		LeftMotor:    drivers.MotorConf{ForwardPin: "2", ReversePin: "3"},
		RightMotor:   drivers.MotorConf{ForwardPin: "5", ReversePin: "6"},
		Modes: []behaviorapi.BehaviorConfEnvelope{
			{Type: behaviors.Behavior_Idle, ID: 1},
			{Type: behaviors.Behavior_RemoteControl, ID: 2},
		},
		InitialMode: 1,
	}
	return config
}

func TestDaemon_Simple(t *testing.T) {
	d, err := NewDaemon(createConfig())
	if err != nil {
		t.Fatalf("Error while creating daemon: %s", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Error while starting daemon: %s", err)
	}

	resp, err := d.Ping()
	if err != nil {
		t.Fatalf("unexpected ping error: %s", err)
	}
	if resp.MachineID != "daemon-test" || resp.Version != common.Version {
		t.Errorf("unexpected ping response %+v", resp)
	}

	if err := d.SetMode(ctx, 2); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		st, err := d.Status(ctx)
		if err != nil {
			t.Fatalf("unexpected status error: %s", err)
		}
		if st.LastActiveMode == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("mode 2 never became active: %+v", st)
		}
		time.Sleep(2 * time.Millisecond)
	}
	if err := d.Drive(ctx, types.DriveRequest{Command: types.DriveSpinLeft, Left: 90, Right: 90}); err != nil {
		t.Fatalf("unexpected drive error: %s", err)
	}

	if err := d.Stop(); err != nil {
		t.Fatalf("unexpected stop error: %s", err)
	}
	select {
	case <-d.Done():
	default:
		t.Fatalf("control loop still running after stop")
	}
	if err := d.SetMode(ctx, 1); !errors.Is(err, types.ErrLoopStopped) {
		t.Errorf("expected ErrLoopStopped, got %v", err)
	}
}

func TestDaemon_NoConfig(t *testing.T) {
	if _, err := NewDaemon(nil); err == nil {
		t.Errorf("expected an error for nil config")
	}
	if _, err := NewDaemon(NewConfig()); err == nil {
		t.Errorf("expected an error without machine config")
	}
}

func TestEnvConfig(t *testing.T) {
	os.Setenv(common.EnvSocket, "/tmp/mebot-test.sock")
	os.Setenv(common.EnvTickInterval, "40")
	os.Setenv(common.EnvDebug, "true")
	defer func() {
		os.Unsetenv(common.EnvSocket)
		os.Unsetenv(common.EnvTickInterval)
		os.Unsetenv(common.EnvDebug)
	}()

	e, err := LoadEnvConfig()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !e.Debug || e.TickInterval != 40 || e.SocketPath != "/tmp/mebot-test.sock" {
		t.Fatalf("unexpected env config %+v", e)
	}

	c := createConfig()
	c.ApplyEnv(e)
	if c.SocketPath != "/tmp/mebot-test.sock" {
		t.Errorf("expected socket from environment, got %s", c.SocketPath)
	}
	if c.Machine.TickInterval != 40 {
		t.Errorf("expected tick interval from environment, got %d", c.Machine.TickInterval)
	}

	// an explicit socket wins
	c = createConfig()
	c.SocketPath = "/run/custom.sock"
	c.ApplyEnv(e)
	if c.SocketPath != "/run/custom.sock" {
		t.Errorf("explicit socket overridden, got %s", c.SocketPath)
	}
}
