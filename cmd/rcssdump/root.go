package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// config is the configuration of rcssdump, as read by viper.
type config struct {
	Sheets []string  `mapstructure:"sheets"`
	HTML   string    `mapstructure:"html"`
	Format string    `mapstructure:"format"`
	Groups []string  `mapstructure:"groups"`
	Log    logConfig `mapstructure:"log"`
}

type logConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

var formats = []string{"rules", "tree", "dot"}

func (c *config) validate() error {
	if len(c.Sheets) == 0 && c.HTML == "" {
		return errors.New("no stylesheets and no HTML document given")
	}
	for _, f := range formats {
		if c.Format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q, expected one of %s", c.Format, strings.Join(formats, ", "))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", "rules")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// newRootCmd creates the command with a viper instance of its own.
func newRootCmd() *cobra.Command {
	v := viper.New()
	setDefaults(v)
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "rcssdump [stylesheet ...]",
		Short: "Combine stylesheets and show the rule tree or a styled document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfig(v, cfgFile); err != nil {
				return err
			}
			var cfg config
			if err := v.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("failed to unmarshal config: %w", err)
			}
			cfg.Sheets = append(cfg.Sheets, args...)
			if err := cfg.validate(); err != nil {
				return err
			}
			log := newLogger(cfg.Log, cmd.ErrOrStderr())
			defer log.Sync()
			log.Debug("configuration", zap.Strings("sheets", cfg.Sheets), zap.String("html", cfg.HTML),
				zap.String("format", cfg.Format))
			return run(&cfg, log, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./rcssdump.yaml)")
	flags.String("html", "", "HTML document to style")
	flags.StringP("format", "f", "rules", "output format: "+strings.Join(formats, ", "))
	flags.StringSlice("groups", nil, "property groups for format 'dot'")
	flags.String("log-level", "warn", "log level for diagnostics")
	_ = v.BindPFlag("html", flags.Lookup("html"))
	_ = v.BindPFlag("format", flags.Lookup("format"))
	_ = v.BindPFlag("groups", flags.Lookup("groups"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	return cmd
}

// readConfig reads the config file and sets up environment overrides.
func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("rcssdump")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("RCSS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// newLogger creates the logger for diagnostics, writing to w.
func newLogger(cfg logConfig, w io.Writer) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.WarnLevel)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core).Named("rcssdump")
}
