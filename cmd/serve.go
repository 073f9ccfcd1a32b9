/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/litteralabs/littera/internal/infrastructure/server"
)

// serveCmd starts the Resource Model's loopback Connect endpoint (§4.6) for
// the Work named by --work, so a desktop or TUI front-end can bind to it
// instead of shelling out to the CLI per keystroke. It holds the same
// cluster/DB acquisition withApp uses for a one-shot command, but for the
// life of the process rather than one invocation, mirroring the teacher's
// cmd/serve.go long-lived-process shape.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve this Work's Resource Model over loopback Connect (HTTP/JSON, gRPC, gRPC-Web)",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		s, err := withApp(cmd)
		if err != nil {
			return err
		}
		defer s.release()

		logger := logrus.New()
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		srv, err := server.New(s.app, logger, addr)
		if err != nil {
			return fmt.Errorf("start resource-model server: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "serving on %s\n", srv.Addr())

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return srv.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "127.0.0.1:0", "loopback address to bind the Resource Model server on")
}
