package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"myclient/domain"
	"myclient/service"
	"myclient/ui"
)

// reloginHint is printed after a failure that ended or lacked a session.
const reloginHint = "Run `myclient login` to sign in again."

// command is one CLI verb. run writes its result to out as indented JSON.
type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string, out io.Writer) error
}

// errUnknownCommand is wrapped by dispatch for verbs it does not know.
var errUnknownCommand = errors.New("unknown command")

// commands are the verbs dispatch knows. console is handled by run because it blocks.
var commands = map[string]command{
	"login":      {usage: "login --username U --password P", run: loginCmd},
	"register":   {usage: "register --username U --email E --password P [--full-name N]", run: registerCmd},
	"logout":     {usage: "logout", run: logoutCmd},
	"whoami":     {usage: "whoami", run: whoamiCmd},
	"verify":     {usage: "verify", run: verifyCmd},
	"scenarios":  group("scenarios", scenarioCommands),
	"devices":    group("devices", deviceCommands),
	"jobs":       group("jobs", jobCommands),
	"theme":      group("theme", themeCommands),
	"run-web":    {usage: "run-web --file request.json", run: runWebCmd},
	"run-mobile": {usage: "run-mobile --file request.json", run: runMobileCmd},
	"parse":      {usage: "parse [--target web|mobile] TEXT...", run: parseCmd},
	"health":     {usage: "health [--target web|mobile]", run: healthCmd},
}

var scenarioCommands = map[string]command{
	"list": {usage: "list [--type web|mobile|desktop]", run: scenariosListCmd},
	"get":  {usage: "get ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.scenarios.Get(ctx, id) })},
	"create": {usage: "create --file scenario.json", run: withBody(func(ctx context.Context, a *app, req domain.ScenarioCreate) (any, error) {
		return a.scenarios.Create(ctx, req)
	})},
	"update": {usage: "update ID --file scenario.json", run: withIDAndBody(func(ctx context.Context, a *app, id int, req domain.ScenarioUpdate) (any, error) {
		return a.scenarios.Update(ctx, id, req)
	})},
	"delete":    {usage: "delete ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.scenarios.Delete(ctx, id) })},
	"duplicate": {usage: "duplicate ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.scenarios.Duplicate(ctx, id) })},
	"stats":     {usage: "stats", run: noArgs(func(ctx context.Context, a *app) (any, error) { return a.scenarios.Stats(ctx) })},
	"folders":   {usage: "folders", run: noArgs(func(ctx context.Context, a *app) (any, error) { return a.scenarios.Folders(ctx) })},
	"create-folder": {usage: "create-folder --file folder.json", run: withBody(func(ctx context.Context, a *app, req domain.FolderCreate) (any, error) {
		return a.scenarios.CreateFolder(ctx, req)
	})},
	"delete-folder": {usage: "delete-folder ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.scenarios.DeleteFolder(ctx, id) })},
}

var deviceCommands = map[string]command{
	"list": {usage: "list [--type emulator|physical]", run: devicesListCmd},
	"get":  {usage: "get ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.devices.Get(ctx, id) })},
	"create": {usage: "create --file device.json", run: withBody(func(ctx context.Context, a *app, req domain.DeviceCreate) (any, error) {
		return a.devices.Create(ctx, req)
	})},
	"update": {usage: "update ID --file device.json", run: withIDAndBody(func(ctx context.Context, a *app, id int, req domain.DeviceUpdate) (any, error) {
		return a.devices.Update(ctx, id, req)
	})},
	"delete":    {usage: "delete ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.devices.Delete(ctx, id) })},
	"duplicate": {usage: "duplicate ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.devices.Duplicate(ctx, id) })},
	"lock":      {usage: "lock ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.devices.Lock(ctx, id) })},
	"unlock":    {usage: "unlock ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.devices.Unlock(ctx, id) })},
	"offline":   {usage: "offline ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.devices.SetOffline(ctx, id) })},
	"online":    {usage: "online ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.devices.SetOnline(ctx, id) })},
	"available": {usage: "available", run: noArgs(func(ctx context.Context, a *app) (any, error) { return a.devices.Available(ctx) })},
	"mine":      {usage: "mine", run: noArgs(func(ctx context.Context, a *app) (any, error) { return a.devices.Mine(ctx) })},
}

var jobCommands = map[string]command{
	"list":      {usage: "list", run: noArgs(func(ctx context.Context, a *app) (any, error) { return a.jobs.List(ctx) })},
	"get":       {usage: "get ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.jobs.Get(ctx, id) })},
	"create":    {usage: "create --file job.json", run: withBody(func(ctx context.Context, a *app, req domain.JobCreate) (any, error) { return a.jobs.Create(ctx, req) })},
	"run":       {usage: "run ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.jobs.Run(ctx, id) })},
	"stop":      {usage: "stop ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.jobs.Stop(ctx, id) })},
	"delete":    {usage: "delete ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.jobs.Delete(ctx, id) })},
	"history":   {usage: "history ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.jobs.History(ctx, id) })},
	"scenarios": {usage: "scenarios ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.jobs.Scenarios(ctx, id) })},
	"devices":   {usage: "devices ID", run: withID(func(ctx context.Context, a *app, id int) (any, error) { return a.jobs.Devices(ctx, id) })},
}

var themeCommands = map[string]command{
	"get":    {usage: "get", run: themeGetCmd},
	"toggle": {usage: "toggle", run: themeToggleCmd},
}

// dispatch runs the verb in args[0] with the remaining args.
func dispatch(ctx context.Context, a *app, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: none given", errUnknownCommand)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w %q", errUnknownCommand, args[0])
	}
	return cmd.run(ctx, a, args[1:], out)
}

// group builds a verb that dispatches to subs by its first argument.
func group(name string, subs map[string]command) command {
	names := make([]string, 0, len(subs))
	for sub := range subs {
		names = append(names, sub)
	}
	slices.Sort(names)
	return command{
		usage: name + " <" + strings.Join(names, "|") + ">",
		run: func(ctx context.Context, a *app, args []string, out io.Writer) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: %s needs one of %s", errUnknownCommand, name, strings.Join(names, ", "))
			}
			sub, ok := subs[args[0]]
			if !ok {
				return fmt.Errorf("%w %q", errUnknownCommand, name+" "+args[0])
			}
			return sub.run(ctx, a, args[1:], out)
		},
	}
}

func noArgs(call func(ctx context.Context, a *app) (any, error)) func(context.Context, *app, []string, io.Writer) error {
	return func(ctx context.Context, a *app, args []string, out io.Writer) error {
		if len(args) > 0 {
			return service.NewBadParameterError(fmt.Sprintf("unexpected arguments: %s", strings.Join(args, " ")), nil)
		}
		return printResult(out)(call(ctx, a))
	}
}

func withID(call func(ctx context.Context, a *app, id int) (any, error)) func(context.Context, *app, []string, io.Writer) error {
	return func(ctx context.Context, a *app, args []string, out io.Writer) error {
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return printResult(out)(call(ctx, a, id))
	}
}

func withBody[T any](call func(ctx context.Context, a *app, req T) (any, error)) func(context.Context, *app, []string, io.Writer) error {
	return func(ctx context.Context, a *app, args []string, out io.Writer) error {
		fs, file := fileFlagSet()
		if _, err := parseFlags(fs, args); err != nil {
			return err
		}
		var req T
		if err := readBody(*file, &req); err != nil {
			return err
		}
		return printResult(out)(call(ctx, a, req))
	}
}

func withIDAndBody[T any](call func(ctx context.Context, a *app, id int, req T) (any, error)) func(context.Context, *app, []string, io.Writer) error {
	return func(ctx context.Context, a *app, args []string, out io.Writer) error {
		fs, file := fileFlagSet()
		positional, err := parseFlags(fs, args)
		if err != nil {
			return err
		}
		id, err := parseID(positional)
		if err != nil {
			return err
		}
		var req T
		if err := readBody(*file, &req); err != nil {
			return err
		}
		return printResult(out)(call(ctx, a, id, req))
	}
}

func loginCmd(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := newFlagSet("login")
	username := fs.String("username", "", "account name")
	password := fs.String("password", "", "account password")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return service.NewBadParameterError("--username and --password are required", nil)
	}
	resp, err := a.auth.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	return printJSON(out, resp.User)
}

func registerCmd(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := newFlagSet("register")
	var req domain.RegisterRequest
	fs.StringVar(&req.Username, "username", "", "account name")
	fs.StringVar(&req.Email, "email", "", "e-mail address")
	fs.StringVar(&req.Password, "password", "", "account password")
	fs.StringVar(&req.FullName, "full-name", "", "display name")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return service.NewBadParameterError("--username, --email and --password are required", nil)
	}
	resp, err := a.auth.Register(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(out, resp.User)
}

func logoutCmd(ctx context.Context, a *app, args []string, out io.Writer) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	return printJSON(out, map[string]bool{"logged_out": true})
}

// whoamiResult is the output of whoami. Claims is omitted when the token is not a JWT.
type whoamiResult struct {
	User   domain.User          `json:"user"`
	Role   string               `json:"role"`
	Claims *service.TokenClaims `json:"claims,omitempty"`
}

func whoamiCmd(ctx context.Context, a *app, args []string, out io.Writer) error {
	if !a.session.IsLoggedIn(ctx) {
		return service.NewNotLoggedInError()
	}
	user, err := a.auth.Me(ctx)
	if err != nil {
		return err
	}
	result := whoamiResult{User: user, Role: a.formatter.RoleLabel(user.Role)}
	if claims, err := a.session.Claims(ctx); err == nil {
		result.Claims = &claims
	}
	return printJSON(out, result)
}

func verifyCmd(ctx context.Context, a *app, args []string, out io.Writer) error {
	if !a.session.IsLoggedIn(ctx) {
		return service.NewNotLoggedInError()
	}
	return printResult(out)(a.auth.Verify(ctx))
}

func scenariosListCmd(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := newFlagSet("scenarios list")
	scenarioType := fs.String("type", "", "web, mobile or desktop")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}
	return printResult(out)(a.scenarios.List(ctx, *scenarioType))
}

func devicesListCmd(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := newFlagSet("devices list")
	deviceType := fs.String("type", "", "emulator or physical")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}
	return printResult(out)(a.devices.List(ctx, *deviceType))
}

func runWebCmd(ctx context.Context, a *app, args []string, out io.Writer) error {
	return withBody(func(ctx context.Context, a *app, req domain.WebTestRequest) (any, error) {
		return testOutcome(a.tests.RunWebTest(ctx, req))
	})(ctx, a, args, out)
}

func runMobileCmd(ctx context.Context, a *app, args []string, out io.Writer) error {
	return withBody(func(ctx context.Context, a *app, req domain.MobileTestRequest) (any, error) {
		return testOutcome(a.tests.RunMobileTest(ctx, req))
	})(ctx, a, args, out)
}

// testFailedError reports a run the backend executed but that did not pass. The result is still printed.
type testFailedError struct {
	result domain.TestRunResult
}

func (e testFailedError) Error() string {
	return fmt.Sprintf("test %s failed: %s", e.result.TestID, e.result.Message)
}

func testOutcome(result domain.TestRunResult, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return result, testFailedError{result: result}
	}
	return result, nil
}

func parseCmd(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := newFlagSet("parse")
	target := fs.String("target", service.TargetWeb, "web or mobile")
	positional, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(positional, " "))
	if text == "" {
		return service.NewBadParameterError("text to parse is required", nil)
	}
	return printResult(out)(a.tests.ParseNatural(ctx, text, *target))
}

func healthCmd(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := newFlagSet("health")
	target := fs.String("target", service.TargetWeb, "web or mobile")
	if _, err := parseFlags(fs, args); err != nil {
		return err
	}
	return printResult(out)(a.tests.Health(ctx, *target))
}

// themeResult is the output of the theme verbs.
type themeResult struct {
	Theme string `json:"theme"`
	Icon  string `json:"icon"`
}

func themeGetCmd(ctx context.Context, a *app, args []string, out io.Writer) error {
	theme := a.theme.Get(ctx)
	return printJSON(out, themeResult{Theme: theme, Icon: ui.Icon(theme)})
}

func themeToggleCmd(ctx context.Context, a *app, args []string, out io.Writer) error {
	theme, err := a.theme.Toggle(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, themeResult{Theme: theme, Icon: ui.Icon(theme)})
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func fileFlagSet() (*flag.FlagSet, *string) {
	fs := newFlagSet("body")
	file := fs.String("file", "", "JSON request body")
	return fs, file
}

// parseFlags parses fs allowing flags before, between and after positional arguments, which it returns.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, service.NewBadParameterError(err.Error(), err)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func parseID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, service.NewBadParameterError("exactly one ID argument is required", nil)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, service.NewBadParameterError(fmt.Sprintf("ID must be a positive integer, got %q", args[0]), err)
	}
	return id, nil
}

// readBody decodes the JSON file at path into dst.
func readBody(path string, dst any) error {
	if path == "" {
		return service.NewBadParameterError("--file is required", nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return service.NewBadParameterError(fmt.Sprintf("read %s: %v", path, err), err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return service.NewBadParameterError(fmt.Sprintf("%s is not valid JSON: %v", path, err), err)
	}
	return nil
}

// printResult prints v when err is nil, and returns err otherwise. A testFailedError prints v as well.
func printResult(out io.Writer) func(v any, err error) error {
	return func(v any, err error) error {
		var failed testFailedError
		if err != nil && !errors.As(err, &failed) {
			return err
		}
		if printErr := printJSON(out, v); printErr != nil {
			return printErr
		}
		return err
	}
}

func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
