package sitetask

import (
	"github.com/sitetask/sitetask/pkg/cfg"
)

// PluginKind identifies the plugin that executes an Action.
type PluginKind string

const (
	KindConcat     PluginKind = cfg.PluginConcat
	KindMinify     PluginKind = cfg.PluginMinify
	KindLint       PluginKind = cfg.PluginLint
	KindShell      PluginKind = cfg.PluginShell
	KindCSSCompile PluginKind = cfg.PluginCSSCompile
	KindSiteBuild  PluginKind = cfg.PluginSiteBuild
	KindPublish    PluginKind = cfg.PluginPublish
	// KindWatch actions are not executed by a plugin but by the Watcher
	// of the Executor.
	KindWatch PluginKind = "watch"
)

// Action is an atomic unit of work. The options field that belongs to Kind
// is set, all others are nil.
type Action struct {
	Name string
	Kind PluginKind

	Concat     *cfg.ConcatOptions
	Minify     *cfg.MinifyOptions
	Lint       *cfg.LintOptions
	Shell      *cfg.ShellOptions
	CSSCompile *cfg.CSSCompileOptions
	SiteBuild  *cfg.SiteBuildOptions
	Publish    *cfg.PublishOptions
	Watch      *cfg.WatchBinding
}

// NewActionFromCfg converts an action configuration section.
func NewActionFromCfg(a *cfg.Action) *Action {
	return &Action{
		Name:       a.Name,
		Kind:       PluginKind(a.Plugin),
		Concat:     a.Concat,
		Minify:     a.Minify,
		Lint:       a.Lint,
		Shell:      a.Shell,
		CSSCompile: a.CSSCompile,
		SiteBuild:  a.SiteBuild,
		Publish:    a.Publish,
	}
}

// NewWatchAction returns the action that watches the files of w.
func NewWatchAction(w *cfg.WatchBinding) *Action {
	return &Action{
		Name:  w.ActionName(),
		Kind:  KindWatch,
		Watch: w,
	}
}

func (a *Action) String() string {
	return a.Name
}
