package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/leengari/ply-scene/internal/engine"
	"github.com/leengari/ply-scene/internal/executor"
)

// Request carries one command line, e.g. {"query":"extract vertex x y z 1"}
type Request struct {
	Query string `json:"query"`
}

// Start listens on port and serves until the listener fails
func Start(port int, eng *engine.Engine) error {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		slog.Error("Failed to bind to port", "port", port, "error", err)
		return err
	}
	defer listener.Close()

	slog.Info("Running on port", "port", port)
	return Serve(listener, eng)
}

// Serve accepts connections on l. Connections share eng and its document
// cache but each gets its own current document.
func Serve(l net.Listener, eng *engine.Engine) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Error("Failed to accept connection", "error", err)
			return err
		}
		go handleConnection(conn, eng)
	}
}

func handleConnection(conn net.Conn, eng *engine.Engine) {
	defer conn.Close()

	x := executor.New(eng)
	slog.Debug("client connected", "remote", conn.RemoteAddr())

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req Request
		if err := decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return
			}
			slog.Error("decode error", "error", err)

			errResult := &executor.Result{
				Error: fmt.Sprintf("Invalid request format: %v", err),
			}
			_ = encoder.Encode(errResult)
			return
		}

		if req.Query == "exit" || req.Query == "\\q" {
			return
		}

		result, err := x.Execute(req.Query)
		if err != nil {
			result = &executor.Result{Error: err.Error()}
		}

		if err := encoder.Encode(result); err != nil {
			slog.Error("encode error", "error", err)
			// marshal failures write nothing, so the client still gets a reply
			if err := encoder.Encode(&executor.Result{Error: fmt.Sprintf("cannot encode result: %v", err)}); err != nil {
				return
			}
		}
	}
}
