package daemon

import (
	"context"
	"time"

	"github.com/JebManMan/MeBot/common/backend"

	"github.com/abiosoft/ishell"
)

const shellTimeout = 5 * time.Second

// newShell builds the operator shell for a running robot. statusLog
// returns the machine status history.
func newShell(b backend.MebotBackend, statusLog func() string) *ishell.Shell {
	shell := ishell.New()
	shell.Println("MeBot operator shell")
	shell.ShowPrompt(true)

	shell.AddCmd(&ishell.Cmd{
		Name: "mode",
		Help: "mode <id>",
		Func: func(c *ishell.Context) {
			id, err := parseModeArg(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), shellTimeout)
			defer cancel()
			if err := b.SetMode(ctx, id); err != nil {
				c.Err(err)
				return
			}
			c.Printf("Mode %d selected\n", id)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "drive",
		Help: "drive <forward|reverse|spin-left|spin-right|stop|brake|coast> [left [right]]",
		Completer: func([]string) []string {
			return []string{"forward", "reverse", "spin-left", "spin-right", "stop", "brake", "coast"}
		},
		Func: func(c *ishell.Context) {
			req, err := parseDriveArgs(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), shellTimeout)
			defer cancel()
			if err := b.Drive(ctx, req); err != nil {
				c.Err(err)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "status",
		Help: "show the active mode",
		Func: func(c *ishell.Context) {
			ctx, cancel := context.WithTimeout(context.Background(), shellTimeout)
			defer cancel()
			st, err := b.Status(ctx)
			if err != nil {
				c.Err(err)
				return
			}
			c.Print(formatStatus(st))
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "log",
		Help: "show the status log, newest first",
		Func: func(c *ishell.Context) {
			c.Println(statusLog())
		},
	})

	return shell
}
