/*
anima-scene loads XML scene descriptions into a scene graph backed by a
headless renderer, reports what was built and optionally reloads the scene
whenever one of its assets changes.
*/
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spaghettifunk/anima-scene/engine"
	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/loader"
	"github.com/spaghettifunk/anima-scene/testbed"
)

type options struct {
	configPath string
	basePath   string
	logLevel   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "anima-scene",
		Short:         "Load XML scene descriptions into a scene graph",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	root.PersistentFlags().StringVarP(&opts.basePath, "base", "b", "", "asset root, overrides assets.base_path")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn, error or fatal")

	root.AddCommand(newLoadCommand(opts), newWatchCommand(opts), newDemoCommand(opts))
	return root
}

func newLoadCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "load <scene.xml>",
		Short: "Load a scene and print its object tree and diagnostics",
		Long: `Load a scene and print its object tree and diagnostics.
With watch.enabled set in the configuration the scene keeps being reloaded
like the watch command does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			name, err := sceneName(cfg, args[0])
			if err != nil {
				return err
			}
			if cfg.Watch.Enabled {
				return watchScene(cmd, cfg, name)
			}
			return loadOnce(cmd, cfg, nil, name)
		},
	}
}

func newDemoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Load the built-in demo scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			return loadOnce(cmd, cfg, testbed.Assets(), testbed.DemoScene)
		},
	}
}

func newWatchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <scene.xml>",
		Short: "Load a scene and reload it whenever an asset changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			name, err := sceneName(cfg, args[0])
			if err != nil {
				return err
			}
			cfg.Watch.Enabled = true
			return watchScene(cmd, cfg, name)
		},
	}
}

// config resolves the configuration file and the command line overrides.
func (o *options) config() (*core.Config, error) {
	cfg := core.DefaultConfig()
	if o.configPath != "" {
		loaded, err := core.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.basePath != "" {
		cfg.Assets.BasePath = o.basePath
	}
	if o.logLevel != "" {
		cfg.Log.Level = core.LogLevel(o.logLevel)
	}
	return cfg, nil
}

// sceneName turns a command line path into a path inside the asset root.
func sceneName(cfg *core.Config, arg string) (string, error) {
	if filepath.IsAbs(arg) {
		base, err := filepath.Abs(cfg.Assets.BasePath)
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(base, arg)
		if err != nil {
			return "", err
		}
		arg = rel
	}
	name := filepath.ToSlash(filepath.Clean(arg))
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("scene %s is outside of the asset root %s", arg, cfg.Assets.BasePath)
	}
	return name, nil
}

func loadOnce(cmd *cobra.Command, cfg *core.Config, dataSource fs.FS, name string) error {
	e, err := engine.New(cfg, dataSource)
	if err != nil {
		return err
	}
	if err := e.Initialize(); err != nil {
		return err
	}
	defer e.Shutdown()

	res, err := e.LoadScene(name)
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), res)
	if res.HasErrors() {
		return fmt.Errorf("%s: %d error(s)", name, len(res.Errors()))
	}
	return nil
}

func watchScene(cmd *cobra.Command, cfg *core.Config, name string) error {
	e, err := engine.New(cfg, nil)
	if err != nil {
		return err
	}
	if err := e.Initialize(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(sigCh)

	// start shutdown goroutine
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	out := cmd.OutOrStdout()
	err = e.Watch(ctx, name, func(res *loader.Result) {
		printResult(out, res)
	})
	if shutdownErr := e.Shutdown(); err == nil {
		err = shutdownErr
	}
	return err
}
