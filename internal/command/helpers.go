package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sitetask/sitetask/internal/log"
	"github.com/sitetask/sitetask/internal/prettyprint"
	"github.com/sitetask/sitetask/internal/upload/s3"
	"github.com/sitetask/sitetask/internal/watch"
	"github.com/sitetask/sitetask/pkg/sitetask"
)

const configFileName = sitetask.ConfigFile

const defaultTaskName = "default"

// exitOnErr logs err and terminates the program if err is not nil.
// The exit code depends on the type of the error.
func exitOnErr(err error, msg ...any) {
	if err == nil {
		return
	}

	exitOnInterrupt()

	if len(msg) > 0 {
		log.Errorf("%s: %s\n", fmt.Sprint(msg...), err)
	} else {
		log.Errorln(err)
	}

	exitFunc(exitCode(err))
}

// exitOnInterrupt terminates the program if ctx was canceled by a signal.
func exitOnInterrupt() {
	if ctx.Err() == nil {
		return
	}

	stderr.Println("interrupted")
	exitFunc(exitCodeInterrupted)
}

func exitCode(err error) int {
	var unknownErr *sitetask.UnknownTaskError
	if errors.As(err, &unknownErr) {
		if unknownErr.ReferencedBy == "" {
			return exitCodeNotExist
		}

		return exitCodeConfigError
	}

	var cycleErr *sitetask.CycleError
	var dupErr *sitetask.DuplicateTaskError
	var watchCycleErr *sitetask.WatchCycleError
	if errors.As(err, &cycleErr) || errors.As(err, &dupErr) || errors.As(err, &watchCycleErr) {
		return exitCodeConfigError
	}

	return exitCodeError
}

// mustLoadProject loads the project of the file passed via --config, of the
// configuration file found in the working directory or its parents, or the
// built-in configuration if none exists.
func mustLoadProject() *sitetask.Project {
	p := loadProject()

	if log.DebugEnabled() {
		log.Debugf("project root: %s, resolved configuration:\n%s", p.Root, prettyprint.AsTOML(p.Cfg))
	}

	return p
}

func loadProject() *sitetask.Project {
	if configFlag != "" {
		p, err := sitetask.ProjectFromFile(configFlag)
		exitOnConfigErr(err)

		return p
	}

	wd, err := os.Getwd()
	exitOnErr(err)

	p, err := sitetask.FindProject(wd)
	if err == nil {
		log.Debugf("using configuration %s\n", p.Cfg.FilePath())
		return p
	}

	if !errors.Is(err, os.ErrNotExist) {
		exitOnConfigErr(err)
	}

	log.Debugf("%s, using built-in configuration\n", err)

	p, err = sitetask.DefaultProject(wd)
	exitOnConfigErr(err)

	return p
}

func exitOnConfigErr(err error) {
	if err == nil {
		return
	}

	log.Errorln(err)
	exitFunc(exitCodeConfigError)
}

type session struct {
	project    *sitetask.Project
	registry   *sitetask.Registry
	executor   *sitetask.Executor
	dispatcher *watch.Dispatcher
}

// mustNewSession creates the registry of the project and an executor that
// runs processes via the exec package and uploads to S3. Watch actions are
// executed by a dispatcher backed by fsnotify.
func mustNewSession(p *sitetask.Project) *session {
	registry, err := p.Registry()
	exitOnConfigErr(err)

	runner := sitetask.NewProcessAdapter(p.Root, stdout, log.StdLogger.Debugf)

	newUploader := func(ctx context.Context) (sitetask.Uploader, error) {
		return s3.NewClient(ctx, log.StdLogger)
	}

	executor := sitetask.NewExecutor(
		registry,
		p.Plugins(runner, newUploader, stdout.Printf),
		sitetask.WithReporter(&termReporter{out: stdout}),
	)

	dispatcher := watch.NewDispatcher(
		func() (watch.Source, error) {
			return watch.NewFSNotifySource(
				p.Root,
				p.Cfg.Watcher.Ignore,
				p.Cfg.Watcher.DebounceDuration(),
				log.StdLogger,
			)
		},
		executor,
		watch.WithPrintf(stdout.Printf),
	)
	executor.SetWatcher(dispatcher)

	return &session{
		project:    p,
		registry:   registry,
		executor:   executor,
		dispatcher: dispatcher,
	}
}

// completeTaskNames returns the names of the tasks of the project as shell
// completion candidates.
func completeTaskNames() []string {
	var p *sitetask.Project
	var err error

	if configFlag != "" {
		p, err = sitetask.ProjectFromFile(configFlag)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			if p, err = sitetask.FindProject(wd); errors.Is(err, os.ErrNotExist) {
				p, err = sitetask.DefaultProject(wd)
			}
		}
	}
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(p.Cfg.Tasks))
	for _, t := range p.Cfg.Tasks {
		names = append(names, t.Name)
	}

	return names
}
