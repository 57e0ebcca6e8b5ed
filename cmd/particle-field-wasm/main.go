//go:build js && wasm

// Command particle-field-wasm mounts the particle field on a page canvas.
// JavaScript tears it down by calling particleFieldDispose().
package main

import (
	"syscall/js"

	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/web"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	f, err := field.New(config.DefaultField(), logger)
	if err != nil {
		logger.Fatal("field config", zap.Error(err))
	}
	if !f.Mount(web.New("particles")) {
		logger.Warn("canvas has no 2d context; particle field disabled")
		return
	}

	done := make(chan struct{})
	var dispose js.Func
	dispose = js.FuncOf(func(this js.Value, args []js.Value) any {
		f.Dispose()
		js.Global().Delete("particleFieldDispose")
		dispose.Release()
		close(done)
		return nil
	})
	js.Global().Set("particleFieldDispose", dispose)

	<-done
}
