package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	slogctx "github.com/veqryn/slog-context"

	"github.com/expo-unity/unitylink/internal/config"
	clierrors "github.com/expo-unity/unitylink/internal/errors"
	"github.com/expo-unity/unitylink/internal/git"
	"github.com/expo-unity/unitylink/internal/transform"
	"github.com/expo-unity/unitylink/internal/xcodeproj"
)

// rootOptions holds the global flags shared by every command.
type rootOptions struct {
	configPath    string
	root          string
	project       string
	unityPath     string
	frameworkName string
	noColor       bool

	opener git.Opener
}

// environment is the resolved input of a command.
type environment struct {
	Config     *config.Configuration
	ConfigPath string
	Root       string
	Project    string
}

// resolveConfig loads the configuration and settles the project root.
//
// Root: --root > project_root > enclosing git worktree > working directory.
// The config file defaults to .unitylink.json in the --root directory, or
// in the worktree (or working) directory when --root is not given.
func (o *rootOptions) resolveConfig(ctx context.Context) (*environment, error) {
	logger := slogctx.FromCtx(ctx)

	base, err := o.baseDir(ctx)
	if err != nil {
		return nil, err
	}

	configPath := o.configPath
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, clierrors.ConfigFileNotFound(configPath)
		}
	} else {
		configPath = filepath.Join(base, config.DefaultConfigFile)
	}

	opts := config.Options{
		UnityPath:     o.unityPath,
		ProjectFile:   o.project,
		FrameworkName: o.frameworkName,
	}
	if o.root != "" {
		opts.ProjectRoot = base
	}
	if o.project != "" {
		if opts.ProjectFile, err = filepath.Abs(o.project); err != nil {
			return nil, clierrors.Wrap(err, clierrors.Runtime)
		}
	}
	cfg, err := config.Load(configPath, opts)
	if err != nil {
		return nil, clierrors.ConfigParseError(configPath, err)
	}

	root := base
	if cfg.ProjectRoot != "" {
		root = absFrom(base, cfg.ProjectRoot)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, clierrors.DirectoryNotFound(root)
	}

	logger.Debug("resolved configuration",
		"config", configPath,
		"root", root,
		"unity_path", cfg.UnityPath,
		"unity_path_source", cfg.UnityPathSource.String())

	return &environment{Config: cfg, ConfigPath: configPath, Root: root}, nil
}

// resolve is resolveConfig plus project discovery:
// --project > project_file > <root>/ios/*.xcodeproj > <root>/*.xcodeproj.
// A relative --project is taken from the working directory, a relative
// project_file from the project root.
func (o *rootOptions) resolve(ctx context.Context) (*environment, error) {
	env, err := o.resolveConfig(ctx)
	if err != nil {
		return nil, err
	}

	if p := env.Config.ProjectFile; p != "" {
		p = absFrom(env.Root, p)
		if strings.HasSuffix(p, ".xcodeproj") {
			p = filepath.Join(p, xcodeproj.FileName)
		}
		env.Project = p
		return env, nil
	}

	found, err := xcodeproj.Find(env.Root)
	if err != nil {
		if errors.Is(err, xcodeproj.ErrNotFound) {
			return nil, clierrors.ProjectNotFound(env.Root)
		}
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}
	slogctx.FromCtx(ctx).Debug("discovered Xcode project", "path", found)
	env.Project = found
	return env, nil
}

func (o *rootOptions) baseDir(ctx context.Context) (string, error) {
	if o.root != "" {
		return filepath.Abs(o.root)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", clierrors.Wrap(err, clierrors.Runtime)
	}
	root, err := git.FindRoot(o.opener, wd)
	if err != nil {
		slogctx.FromCtx(ctx).Debug("using working directory as project root", "reason", err)
		return wd, nil
	}
	return root, nil
}

// transformOptions binds the configuration to a loaded project.
func (e *environment) transformOptions(proj *xcodeproj.Project) transform.Options {
	return transform.Options{
		UnityPath:     e.Config.UnityPath,
		ProjectDir:    proj.Dir(),
		FrameworkName: e.Config.FrameworkName,
	}
}

// displayPath shortens path relative to the project root when possible.
func (e *environment) displayPath(path string) string {
	if rel, err := filepath.Rel(e.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func absFrom(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// projectError maps transform and document errors to CLI errors.
func projectError(path string, err error) error {
	switch {
	case errors.Is(err, xcodeproj.ErrNoAppTarget):
		return clierrors.NoAppTarget(path)
	case errors.Is(err, xcodeproj.ErrNoObjects), errors.Is(err, xcodeproj.ErrNoRootObject):
		return clierrors.ProjectParseError(path, err)
	default:
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "configuring "+path)
	}
}

func loadProject(path string) (*xcodeproj.Project, error) {
	proj, err := xcodeproj.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, clierrors.NewPrerequisiteError("Xcode project not found: "+path,
				"Check the --project path or run 'npx expo prebuild -p ios'")
		}
		return nil, clierrors.ProjectParseError(path, err)
	}
	return proj, nil
}
