package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/cachestore"
	c "github.com/unkn0wn-root/cachestore/codec"
	"github.com/unkn0wn-root/cachestore/internal/config"
	zaplog "github.com/unkn0wn-root/cachestore/log/zap"
)

type app struct {
	out        io.Writer
	configFile string
	cfg        *config.Config
	log        *zap.Logger
	store      cachestore.Store[any]
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	root := &cobra.Command{
		Use:          "cachemanctl",
		Short:        "Inspect and edit a cacheman key namespace",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close(ctx(cmd))
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (yaml, json or toml)")
	config.Flags(root.PersistentFlags())

	root.AddCommand(
		getCmd(a),
		setCmd(a),
		delCmd(a),
		clearCmd(a),
		scanCmd(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags(), a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	if a.log, err = zc.Build(); err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	var codec c.Codec[any] = c.JSON[any]{}
	switch cfg.Codec {
	case "msgpack":
		codec = c.Msgpack[any]{}
	case "cbor":
		codec = c.MustCBOR[any](false)
	}

	a.store, err = cachestore.New[any](ctx(cmd), cachestore.Options[any]{
		Redis:             cfg.Redis(),
		Prefix:            cfg.Prefix,
		Codec:             codec,
		DefaultTTL:        cfg.TTL,
		ScanCount:         cfg.ScanCount,
		Enumerate:         cfg.EnumerateMode(),
		DeleteConcurrency: cfg.DeleteConcurrency,
		Logger:            zaplog.ZapLogger{L: a.log},
	})
	if err != nil {
		return err
	}
	a.log.Debug("store opened", zap.String("prefix", a.store.Prefix()), zap.String("codec", cfg.Codec))
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.log != nil {
		defer func() { _ = a.log.Sync() }()
	}
	if a.store == nil {
		return nil
	}
	return a.store.Close(ctx)
}

func ctx(cmd *cobra.Command) context.Context {
	if cc := cmd.Context(); cc != nil {
		return cc
	}
	return context.Background()
}
