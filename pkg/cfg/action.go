package cfg

import (
	"fmt"
	"slices"
)

// Plugin identifiers that can be set in Action.Plugin.
const (
	PluginConcat     = "concat"
	PluginMinify     = "minify"
	PluginLint       = "lint"
	PluginShell      = "shell-exec"
	PluginCSSCompile = "css-compile"
	PluginSiteBuild  = "site-build"
	PluginPublish    = "publish"
)

// Plugins is the list of plugin identifiers an Action can refer to.
var Plugins = []string{
	PluginConcat,
	PluginMinify,
	PluginLint,
	PluginShell,
	PluginCSSCompile,
	PluginSiteBuild,
	PluginPublish,
}

// Action is an [[Action]] section. Exactly one of the option tables must be
// set, the one that belongs to Plugin.
type Action struct {
	Name   string `toml:"name" comment:"Identifier of the action, referenced in the steps of tasks."`
	Plugin string `toml:"plugin" comment:"Plugin that executes the action, one of:\n concat, minify, lint, shell-exec, css-compile, site-build, publish"`

	Concat     *ConcatOptions     `toml:"Concat,omitempty"`
	Minify     *MinifyOptions     `toml:"Minify,omitempty"`
	Lint       *LintOptions       `toml:"Lint,omitempty"`
	Shell      *ShellOptions      `toml:"Shell,omitempty"`
	CSSCompile *CSSCompileOptions `toml:"CSSCompile,omitempty"`
	SiteBuild  *SiteBuildOptions  `toml:"SiteBuild,omitempty"`
	Publish    *PublishOptions    `toml:"Publish,omitempty"`
}

// ConcatOptions configures the concat plugin.
type ConcatOptions struct {
	Separator *string  `toml:"separator,omitempty" comment:"String that is inserted between the concatenated files. Defaults to a linefeed when unset, an empty string joins without separator."`
	Banner    string   `toml:"banner,omitempty" comment:"String that is prepended to the output."`
	Src       []string `toml:"src" comment:"Files that are concatenated, in order. Paths are relative to the project root."`
	Dest      string   `toml:"dest" comment:"File that is written."`
}

// MinifyOptions configures the minify plugin.
type MinifyOptions struct {
	Command []string `toml:"command" comment:"JavaScript minifier, called with the src files followed by -o <dest>."`
	Banner  string   `toml:"banner,omitempty" comment:"String that is prepended to the minified output."`
	Src     []string `toml:"src"`
	Dest    string   `toml:"dest"`
}

// LintOptions configures the lint plugin.
type LintOptions struct {
	Command []string        `toml:"command" comment:"JSHint compatible lint tool, called with --config <file> followed by the files."`
	Files   []string        `toml:"files" comment:"Glob patterns of files that are linted."`
	Globals map[string]bool `toml:"globals,omitempty" comment:"Global variables that are predefined, the value specifies if they are writeable."`
}

// ShellOptions configures the shell-exec plugin.
type ShellOptions struct {
	Command string `toml:"command" comment:"Command that is run via the system shell."`
	Stdout  bool   `toml:"stdout" comment:"Print the output of the command while it runs."`
	Dir     string `toml:"dir,omitempty" comment:"Working directory, relative to the project root."`
}

// CSSCompileOptions configures the css-compile plugin.
type CSSCompileOptions struct {
	Command []string `toml:"command" comment:"CSS preprocessor command."`
	Config  string   `toml:"config,omitempty" comment:"Configuration file that is passed via --config."`
	Stdout  bool     `toml:"stdout"`
}

// SiteBuildOptions configures the site-build plugin.
type SiteBuildOptions struct {
	Command []string `toml:"command" comment:"Static site generator command, the subcommand build or serve is appended."`
	Src     string   `toml:"src,omitempty" comment:"Source directory, passed via --source."`
	Config  string   `toml:"config,omitempty" comment:"Configuration file, passed via --config."`
	Serve   bool     `toml:"serve" comment:"Serve the site instead of building it once, the action runs until it is interrupted."`
	Watch   bool     `toml:"watch" comment:"Regenerate the site when files change, only applies when serve is true."`
	Stdout  bool     `toml:"stdout"`
}

// PublishOptions configures the publish plugin.
type PublishOptions struct {
	Dir    string `toml:"dir" comment:"Directory whose files are uploaded."`
	Bucket string `toml:"bucket" comment:"S3 bucket name. Credentials are read from the AWS environment variables and config files.\n The setting is overwritten by the environment variable SITETASK_S3_BUCKET."`
	Prefix string `toml:"prefix,omitempty" comment:"Key prefix of the uploaded objects."`
}

// options returns the option tables of the action that are set.
func (a *Action) options() map[string]bool {
	return map[string]bool{
		PluginConcat:     a.Concat != nil,
		PluginMinify:     a.Minify != nil,
		PluginLint:       a.Lint != nil,
		PluginShell:      a.Shell != nil,
		PluginCSSCompile: a.CSSCompile != nil,
		PluginSiteBuild:  a.SiteBuild != nil,
		PluginPublish:    a.Publish != nil,
	}
}

func (a *Action) validate() error {
	if err := validateName(a.Name); err != nil {
		return fieldErrorWrap(err, "name")
	}

	if !slices.Contains(Plugins, a.Plugin) {
		return newFieldError(fmt.Sprintf("unsupported plugin %q, supported are: %v", a.Plugin, Plugins), "plugin")
	}

	for plugin, set := range a.options() {
		if plugin == a.Plugin {
			if !set {
				return newFieldError(fmt.Sprintf("options table for plugin %q is missing", a.Plugin), optionTableName(plugin))
			}

			continue
		}

		if set {
			return newFieldError(fmt.Sprintf("options table does not belong to plugin %q", a.Plugin), optionTableName(plugin))
		}
	}

	var err error
	switch a.Plugin {
	case PluginConcat:
		err = a.Concat.validate()
	case PluginMinify:
		err = a.Minify.validate()
	case PluginLint:
		err = a.Lint.validate()
	case PluginShell:
		err = a.Shell.validate()
	case PluginCSSCompile:
		err = a.CSSCompile.validate()
	case PluginSiteBuild:
		err = a.SiteBuild.validate()
	case PluginPublish:
		err = a.Publish.validate()
	}
	if err != nil {
		return fieldErrorWrap(err, optionTableName(a.Plugin))
	}

	return nil
}

func optionTableName(plugin string) string {
	switch plugin {
	case PluginConcat:
		return "Concat"
	case PluginMinify:
		return "Minify"
	case PluginLint:
		return "Lint"
	case PluginShell:
		return "Shell"
	case PluginCSSCompile:
		return "CSSCompile"
	case PluginSiteBuild:
		return "SiteBuild"
	case PluginPublish:
		return "Publish"
	default:
		return plugin
	}
}

func (a *Action) resolve(resolver Resolver) error {
	var err error

	switch {
	case a.Concat != nil:
		err = a.Concat.resolve(resolver)
	case a.Minify != nil:
		err = a.Minify.resolve(resolver)
	case a.Lint != nil:
		err = a.Lint.resolve(resolver)
	case a.Shell != nil:
		err = a.Shell.resolve(resolver)
	case a.CSSCompile != nil:
		err = a.CSSCompile.resolve(resolver)
	case a.SiteBuild != nil:
		err = a.SiteBuild.resolve(resolver)
	case a.Publish != nil:
		err = a.Publish.resolve(resolver)
	}
	if err != nil {
		return fieldErrorWrap(err, optionTableName(a.Plugin))
	}

	return nil
}

func validateCommand(cmd []string) error {
	if len(cmd) == 0 || cmd[0] == "" {
		return newFieldError("can not be empty", "command")
	}

	return nil
}

func (o *ConcatOptions) validate() error {
	if len(o.Src) == 0 {
		return newFieldError("can not be empty", "src")
	}

	if o.Dest == "" {
		return newFieldError("can not be empty", "dest")
	}

	return nil
}

func (o *ConcatOptions) resolve(resolver Resolver) error {
	if o.Separator != nil {
		if err := resolveStr(resolver, o.Separator, "separator"); err != nil {
			return err
		}
	}

	return firstErr(
		resolveStr(resolver, &o.Banner, "banner"),
		resolveSlice(resolver, o.Src, "src"),
		resolveStr(resolver, &o.Dest, "dest"),
	)
}

func (o *MinifyOptions) validate() error {
	if err := validateCommand(o.Command); err != nil {
		return err
	}

	if len(o.Src) == 0 {
		return newFieldError("can not be empty", "src")
	}

	if o.Dest == "" {
		return newFieldError("can not be empty", "dest")
	}

	return nil
}

func (o *MinifyOptions) resolve(resolver Resolver) error {
	return firstErr(
		resolveSlice(resolver, o.Command, "command"),
		resolveStr(resolver, &o.Banner, "banner"),
		resolveSlice(resolver, o.Src, "src"),
		resolveStr(resolver, &o.Dest, "dest"),
	)
}

func (o *LintOptions) validate() error {
	if err := validateCommand(o.Command); err != nil {
		return err
	}

	if len(o.Files) == 0 {
		return newFieldError("can not be empty", "files")
	}

	return validateGlobs(o.Files, "files")
}

func (o *LintOptions) resolve(resolver Resolver) error {
	return firstErr(
		resolveSlice(resolver, o.Command, "command"),
		resolveSlice(resolver, o.Files, "files"),
	)
}

func (o *ShellOptions) validate() error {
	if o.Command == "" {
		return newFieldError("can not be empty", "command")
	}

	return nil
}

func (o *ShellOptions) resolve(resolver Resolver) error {
	return firstErr(
		resolveStr(resolver, &o.Command, "command"),
		resolveStr(resolver, &o.Dir, "dir"),
	)
}

func (o *CSSCompileOptions) validate() error {
	return validateCommand(o.Command)
}

func (o *CSSCompileOptions) resolve(resolver Resolver) error {
	return firstErr(
		resolveSlice(resolver, o.Command, "command"),
		resolveStr(resolver, &o.Config, "config"),
	)
}

func (o *SiteBuildOptions) validate() error {
	if err := validateCommand(o.Command); err != nil {
		return err
	}

	if o.Watch && !o.Serve {
		return newFieldError("can only be enabled together with serve", "watch")
	}

	return nil
}

func (o *SiteBuildOptions) resolve(resolver Resolver) error {
	return firstErr(
		resolveSlice(resolver, o.Command, "command"),
		resolveStr(resolver, &o.Src, "src"),
		resolveStr(resolver, &o.Config, "config"),
	)
}

func (o *PublishOptions) validate() error {
	if o.Dir == "" {
		return newFieldError("can not be empty", "dir")
	}

	return nil
}

func (o *PublishOptions) resolve(resolver Resolver) error {
	return firstErr(
		resolveStr(resolver, &o.Dir, "dir"),
		resolveStr(resolver, &o.Bucket, "bucket"),
		resolveStr(resolver, &o.Prefix, "prefix"),
	)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}
