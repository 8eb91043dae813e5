package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"folio/internal/bootstrap"
	"folio/internal/database"
	"folio/internal/models"
	"folio/internal/seed"
	"folio/internal/service"

	"github.com/urfave/cli/v3"
)

type runtimeOpener func(ctx context.Context) (*bootstrap.Runtime, error)

type app struct {
	out  io.Writer
	open runtimeOpener
}

func newApp(out io.Writer, open runtimeOpener) *cli.Command {
	a := &app{out: out, open: open}
	return &cli.Command{
		Name:  "folioctl",
		Usage: "administer a Folio blog database",
		Commands: []*cli.Command{
			a.userCommand(),
			a.postsCommand(),
			a.schemaCommand(),
		},
	}
}

// withRuntime opens the runtime for the duration of fn.
func (a *app) withRuntime(ctx context.Context, fn func(rt *bootstrap.Runtime) error) error {
	rt, err := a.open(ctx)
	if err != nil {
		return err
	}
	return errors.Join(fn(rt), rt.Close())
}

func (a *app) userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "manage user accounts",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "create a user with a bcrypt-hashed password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return a.withRuntime(ctx, func(rt *bootstrap.Runtime) error {
						user, err := service.NewUserService(rt.Store).Create(ctx, cmd.String("username"), cmd.String("password"))
						if err != nil {
							return describe(err)
						}
						fmt.Fprintf(a.out, "Created user %s (id %d)\n", user.Username, user.ID)
						return nil
					})
				},
			},
			{
				Name:  "show",
				Usage: "print a user by --username or --id",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username"},
					&cli.IntFlag{Name: "id"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					username, id := cmd.String("username"), cmd.Int("id")
					if (username == "") == (id <= 0) {
						return errors.New("exactly one of --username or --id is required")
					}

					return a.withRuntime(ctx, func(rt *bootstrap.Runtime) error {
						users := service.NewUserService(rt.Store)
						var (
							user *models.User
							err  error
						)
						if username != "" {
							user, err = users.GetByUsername(ctx, username)
						} else {
							user, err = users.Get(ctx, uint(id))
						}
						if err != nil {
							return describe(err)
						}
						return a.printJSON(user)
					})
				},
			},
		},
	}
}

func (a *app) postsCommand() *cli.Command {
	return &cli.Command{
		Name:  "posts",
		Usage: "inspect and seed posts",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list published posts, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Usage: "include unpublished posts"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return a.withRuntime(ctx, func(rt *bootstrap.Runtime) error {
						posts := service.NewPostService(rt.Store)
						var (
							list []*models.Post
							err  error
						)
						if cmd.Bool("all") {
							list, err = posts.ListAll(ctx)
						} else {
							list, err = posts.ListPublished(ctx)
						}
						if err != nil {
							return describe(err)
						}
						return a.printPosts(list)
					})
				},
			},
			{
				Name:  "seed",
				Usage: "create demo posts or load them from a fixtures file",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "count", Value: 10, Usage: "number of generated posts"},
					&cli.StringFlag{Name: "fixtures", Usage: "YAML fixtures file"},
					&cli.BoolFlag{Name: "publish", Usage: "mark seeded posts as published"},
					&cli.IntFlag{Name: "seed", Usage: "random seed for generated posts"},
					&cli.BoolFlag{Name: "dry-run", Usage: "log posts without writing them"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					opts := seed.Options{
						Count:   cmd.Int("count"),
						Publish: cmd.Bool("publish"),
						Seed:    int64(cmd.Int("seed")),
						DryRun:  cmd.Bool("dry-run"),
					}

					var fixtures []seed.Fixture
					if path := cmd.String("fixtures"); path != "" {
						loaded, err := seed.LoadFixtures(path)
						if err != nil {
							return err
						}
						fixtures = seed.WithPublished(loaded, opts.Publish)
					}

					return a.withRuntime(ctx, func(rt *bootstrap.Runtime) error {
						seeder := seed.NewSeeder(service.NewPostService(rt.Store), opts)
						var (
							res seed.Result
							err error
						)
						if fixtures != nil {
							res, err = seeder.Apply(ctx, fixtures)
						} else {
							res, err = seeder.Generate(ctx)
						}
						fmt.Fprintf(a.out, "Seeded %d posts (%d skipped)\n", res.Created, res.Skipped)
						return describe(err)
					})
				},
			},
		},
	}
}

func (a *app) schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "manage the database schema",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "create or update tables and indexes",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return a.withRuntime(ctx, func(rt *bootstrap.Runtime) error {
						if rt.DB == nil {
							return errors.New("schema migrate requires a postgres or sqlite driver")
						}
						if err := database.Migrate(ctx, rt.DB); err != nil {
							return err
						}
						fmt.Fprintln(a.out, "Schema is up to date")
						return nil
					})
				},
			},
		},
	}
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printPosts(posts []*models.Post) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tPUBLISHED\tCREATED\tTITLE")
	for _, p := range posts {
		fmt.Fprintf(w, "%d\t%s\t%t\t%s\t%s\n", p.ID, p.Slug, p.Published, p.CreatedAt.Format("2006-01-02 15:04"), p.Title)
	}
	return w.Flush()
}

// describe flattens field errors into the message so they reach the terminal.
func describe(err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) || len(appErr.Fields) == 0 {
		return err
	}
	msg := appErr.Message
	for _, f := range appErr.Fields {
		msg += fmt.Sprintf("\n  %s: %s", f.Field, f.Message)
	}
	return errors.New(msg)
}
