package cfg

// ExampleConfig returns the default configuration. It builds a Jekyll site
// with Compass stylesheets and concatenated, minified vendor scripts.
func ExampleConfig() *Config {
	return &Config{
		ConfigVersion: Version,
		PackageFile:   DefaultPackageFile,

		Watcher: Watcher{
			Debounce: DefaultDebounce.String(),
			Ignore: []string{
				".git/**",
				"_site/**",
				".sass-cache/**",
				"node_modules/**",
			},
		},

		Actions: []*Action{
			{
				Name:   "concat",
				Plugin: PluginConcat,
				Concat: &ConcatOptions{
					Src: []string{
						"vendor/modernizr/modernizr.js",
						"vendor/jquery/jquery.js",
						"vendor/foundation/js/foundation/foundation.js",
						"vendor/foundation/js/foundation/foundation.topbar.js",
						"vendor/foundation/js/foundation/foundation.alerts.js",
						"vendor/foundation/js/foundation/foundation.tooltips.js",
						"vendor/picturefill/external/matchmedia.js",
						"vendor/picturefill/picturefill.js",
						"vendor/iosSlider/_src/jquery.iosslider.js",
						"vendor/jquery.transit/jquery.transit.js",
						"vendor/swiper/idangerous.swiper-1.9.js",
						"vendor/fastclick/fastclick.js",
						"js/main.js",
					},
					Dest: "js/main.min.js",
				},
			},
			{
				Name:   "minify",
				Plugin: PluginMinify,
				Minify: &MinifyOptions{
					Command: []string{"uglifyjs"},
					Banner:  `/*! {{ .Pkg.name }} {{ today "02-01-2006" }} */` + "\n",
					Src:     []string{"js/main.min.js"},
					Dest:    "js/main.min.js",
				},
			},
			{
				Name:   "lint",
				Plugin: PluginLint,
				Lint: &LintOptions{
					Command: []string{"jshint"},
					Files:   []string{"js/main.js"},
					Globals: map[string]bool{
						"jQuery":  true,
						"console": true,
						"module":  true,
					},
				},
			},
			{
				Name:   "shell:jekyll_build",
				Plugin: PluginShell,
				Shell: &ShellOptions{
					Command: "jekyll build",
					Stdout:  true,
				},
			},
			{
				Name:   "shell:compass_compile",
				Plugin: PluginShell,
				Shell: &ShellOptions{
					Command: "compass compile",
					Stdout:  true,
				},
			},
			{
				Name:   "compass",
				Plugin: PluginCSSCompile,
				CSSCompile: &CSSCompileOptions{
					Command: []string{"compass", "compile"},
					Config:  "config.rb",
					Stdout:  true,
				},
			},
			{
				Name:   "jekyll:serve",
				Plugin: PluginSiteBuild,
				SiteBuild: &SiteBuildOptions{
					Command: []string{"jekyll"},
					Src:     "{{ .Root }}",
					Config:  "_config.yml",
					Serve:   true,
					Watch:   true,
					Stdout:  true,
				},
			},
			{
				Name:   "publish",
				Plugin: PluginPublish,
				Publish: &PublishOptions{
					Dir: "_site",
				},
			},
		},

		Tasks: []*Task{
			{Name: "test", Steps: []string{"lint"}},
			{Name: "watch_scripts", Steps: []string{"concat", "minify", "shell:jekyll_build"}},
			{Name: "watch_css", Steps: []string{"shell:compass_compile", "shell:jekyll_build"}},
			{Name: "watch_html", Steps: []string{"shell:jekyll_build"}},
			{Name: "compile_css", Steps: []string{"compass", "shell:jekyll_build"}},
			{Name: "jekyll_build", Steps: []string{"shell:jekyll_build"}},
			{Name: "jekyll_serve", Steps: []string{"jekyll:serve"}},
			{Name: "deploy", Steps: []string{"jekyll_build", "publish"}},
			{Name: "default", Steps: []string{"watch:css", "watch:scripts", "watch:html"}},
		},

		Watches: []*WatchBinding{
			{
				Name:  "html",
				Files: []string{"**/*.html"},
				Task:  "watch_html",
			},
			{
				Name:    "scripts",
				Files:   []string{"**/*.js"},
				Exclude: []string{"js/main.min.js"},
				Task:    "watch_scripts",
			},
			{
				Name: "css",
				Files: []string{
					"sass/*",
					"vendor/fontawesome/sass/**",
				},
				Task: "watch_css",
			},
		},
	}
}
