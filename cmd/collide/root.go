package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tomz197/collide/internal/config"
	"github.com/tomz197/collide/internal/logging"
	"github.com/tomz197/collide/internal/scene"
)

// options is the merged result of flags, COLLIDE_* variables and the
// optional config file.
type options struct {
	Scene   string         `mapstructure:"scene"`
	JSON    bool           `mapstructure:"json"`
	Workers int            `mapstructure:"workers"`
	Log     logging.Config `mapstructure:"log"`
}

// app is shared by the subcommands of one root command.
type app struct {
	v      *viper.Viper
	opts   options
	log    *zap.Logger
	scene  *scene.Scene
	config string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logging.Discard()}

	root := &cobra.Command{
		Use:           "collide",
		Short:         "Inspect circle and polygon collision scenes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.config, "config", "c", "", "config file (yaml)")
	flags.StringP("scene", "s", "", "scene file (default: built-in scene)")
	flags.Bool("json", false, "print JSON instead of text")
	flags.Int("workers", config.EvaluateWorkers, "concurrent pair checks")
	flags.String("log-level", "warn", "log level")

	_ = a.v.BindPFlag("scene", flags.Lookup("scene"))
	_ = a.v.BindPFlag("json", flags.Lookup("json"))
	_ = a.v.BindPFlag("workers", flags.Lookup("workers"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(newCheckCmd(a), newSwordCmd(a), newBoundsCmd(a), newReplCmd(a))
	return root
}

// init merges configuration, builds the logger and loads the scene.
func (a *app) init(cmd *cobra.Command) error {
	v := a.v
	def := logging.DefaultConfig()
	v.SetDefault("log.format", def.Format)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", def.MaxSizeMB)
	v.SetDefault("log.max_backups", def.MaxBackups)
	v.SetDefault("log.max_age_days", def.MaxAgeDays)

	v.SetEnvPrefix("COLLIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if a.config != "" {
		v.SetConfigFile(a.config)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}
	if err := v.Unmarshal(&a.opts); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	a.opts.Log.Name = "collide"
	logger, err := logging.NewWithWriter(a.opts.Log, logging.WriterSyncer(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	a.log = logger

	if a.opts.Scene == "" {
		a.scene = scene.Default()
		a.log.Debug("using built-in scene")
		return nil
	}
	sc, err := scene.LoadFile(a.opts.Scene)
	if err != nil {
		return err
	}
	a.scene = sc
	a.log.Info("scene loaded", zap.String("path", a.opts.Scene), zap.Int("shapes", len(sc.Shapes)))
	return nil
}
