package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"stride-client/api"
	"stride-client/board"
	"stride-client/card"
	"stride-client/config"
	"stride-client/domain"
	"stride-client/render"
)

const usage = `usage: stride <command> [flags]

commands:
  login       exchange e-mail and password for a session token
  register    create an account and start a session
  logout      forget the stored session token
  check       verify the stored session with the backend
  workspaces  list your workspaces
  projects    list the projects of a workspace
  board       show the board of a project
`

const (
	exitOK      = 0
	exitError   = 1
	exitUsage   = 2
	exitSession = 3
)

var errUsage = errors.New("invalid usage")

type cli struct {
	cfg    *config.Config
	client *api.Client
	logger *log.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func (c *cli) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.errOut, usage)
		return exitUsage
	}

	c.client.Session().OnLogout(func() {
		c.logger.Debug("cli.logged_out")
	})

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "login":
		err = c.login(ctx, rest)
	case "register":
		err = c.register(ctx, rest)
	case "logout":
		err = c.logout(ctx)
	case "check":
		err = c.check(ctx)
	case "workspaces":
		err = c.workspaces(ctx)
	case "projects":
		err = c.projects(ctx, rest)
	case "board":
		err = c.board(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(c.out, usage)
		return exitOK
	default:
		fmt.Fprintf(c.errOut, "unknown command %q\n\n%s", cmd, usage)
		return exitUsage
	}
	return c.report(err)
}

// report prints err for a human and returns the process exit code.
func (c *cli) report(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(c.errOut, err)
		}
		return exitUsage
	}
	fmt.Fprintln(c.errOut, describe(err))
	if api.KindOf(err) == api.KindSessionExpired {
		return exitSession
	}
	return exitError
}

func describe(err error) string {
	switch api.KindOf(err) {
	case api.KindAuthentication:
		return "Login failed: invalid credentials."
	case api.KindRegistration:
		msg := err.Error()
		if detail := strings.TrimPrefix(msg, api.ErrRegistration.Error()+": "); detail != msg {
			return "Registration failed: " + detail
		}
		return "Registration failed."
	case api.KindSessionExpired:
		return "Your session has expired. Run `stride login` to sign in again."
	case api.KindMalformedData:
		return "The server returned data this client could not read."
	case api.KindInvalidArgument:
		return "Invalid input: " + err.Error()
	case api.KindRequest:
		var reqErr *api.RequestError
		if errors.As(err, &reqErr) {
			return fmt.Sprintf("Request failed (%d): %s", reqErr.Status, reqErr.Message)
		}
	case api.KindTransport:
		if errors.Is(err, context.Canceled) {
			return "Canceled."
		}
		return "Could not reach the server: " + err.Error()
	}
	return err.Error()
}

func (c *cli) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	return fs
}

type credentials struct {
	email    *string
	password *string
}

func (c *cli) credentialFlags(fs *flag.FlagSet) credentials {
	return credentials{
		email:    fs.String("email", os.Getenv("STRIDE_EMAIL"), "account e-mail"),
		password: fs.String("password", os.Getenv("STRIDE_PASSWORD"), "account password (prompted when empty)"),
	}
}

func (c *cli) resolve(creds credentials) (string, string, error) {
	email := strings.TrimSpace(*creds.email)
	if email == "" {
		return "", "", fmt.Errorf("%w: -email is required", errUsage)
	}
	password := *creds.password
	if password == "" {
		fmt.Fprint(c.out, "Password: ")
		line, err := bufio.NewReader(c.in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return "", "", fmt.Errorf("%w: password is required", errUsage)
	}
	return email, password, nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := c.newFlagSet("login")
	creds := c.credentialFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	email, password, err := c.resolve(creds)
	if err != nil {
		return err
	}
	token, err := c.client.Session().Login(ctx, email, password)
	if err != nil {
		return err
	}
	c.printExpiry(token)
	return nil
}

func (c *cli) register(ctx context.Context, args []string) error {
	fs := c.newFlagSet("register")
	creds := c.credentialFlags(fs)
	fullName := fs.String("name", "", "full name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*fullName) == "" {
		return fmt.Errorf("%w: -name is required", errUsage)
	}
	email, password, err := c.resolve(creds)
	if err != nil {
		return err
	}
	token, err := c.client.Session().Register(ctx, email, password, strings.TrimSpace(*fullName))
	if err != nil {
		return err
	}
	c.printExpiry(token)
	return nil
}

func (c *cli) printExpiry(token string) {
	if exp, ok := api.TokenExpiry(token); ok {
		fmt.Fprintf(c.out, "Signed in until %s.\n", exp.Local().Format(time.RFC1123))
		return
	}
	fmt.Fprintln(c.out, "Signed in.")
}

func (c *cli) logout(ctx context.Context) error {
	if err := c.client.Session().Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Signed out.")
	return nil
}

func (c *cli) check(ctx context.Context) error {
	if _, ok := c.client.Session().Token(ctx); !ok {
		return api.ErrSessionExpired
	}
	if err := c.client.CheckSession(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Session is valid.")
	return nil
}

func (c *cli) workspaces(ctx context.Context) error {
	workspaces, err := c.client.ListWorkspaces(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, render.Workspaces(workspaces))
	return nil
}

func (c *cli) projects(ctx context.Context, args []string) error {
	fs := c.newFlagSet("projects")
	workspaceID := fs.String("workspace", "", "workspace id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	projects, err := c.client.ListProjects(ctx, *workspaceID)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, render.Projects(projects))
	return nil
}

func (c *cli) board(ctx context.Context, args []string) error {
	fs := c.newFlagSet("board")
	workspaceID := fs.String("workspace", "", "workspace id")
	projectID := fs.String("project", "", "project id")
	query := fs.String("query", "", "only show items whose title or description contains this text")
	width := fs.Int("width", 0, "column width")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ref := domain.ProjectRef{WorkspaceID: *workspaceID, ProjectID: *projectID}

	project, err := c.client.GetProject(ctx, ref)
	if err != nil {
		return err
	}
	loader := board.NewLoader(c.client, c.logger)
	b, err := loader.Load(ctx, ref, *query)
	if err != nil {
		return err
	}

	title := project.Name
	if project.Key != "" {
		title = fmt.Sprintf("%s [%s]", project.Name, project.Key)
	}
	fmt.Fprintf(c.out, "%s  %d items\n", title, b.Count())
	fmt.Fprintln(c.out, render.Board(b, render.Options{
		ColumnWidth: *width,
		Card:        card.Options{Locale: c.cfg.Locale},
	}))
	return nil
}
