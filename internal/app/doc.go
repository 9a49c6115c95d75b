// Package app wires the parallax components together for the CLI.
//
// An App is built once from settings and paths and then drives every
// user-facing operation:
//
//	a, err := app.New()
//	snap := a.Refresh(ctx)
//	for _, g := range snap.FilterWorkspaces("login") {
//	    fmt.Println(g.RepoName, len(g.Workspaces))
//	}
//
// Tests replace collaborators with functional options:
//
//	a, err := app.New(
//	    app.WithPaths(config.NewPaths(dir, dir)),
//	    app.WithSettings(settings),
//	    app.WithExecutor(system.NewMockExecutor()),
//	    app.WithGit(fakeGit),
//	)
//
// Settings are treated as immutable. Changing them means building a new App.
package app
