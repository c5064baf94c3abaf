package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/jrsteele09/school-portal/gateway"
	"github.com/jrsteele09/school-portal/internal/utils"
	"github.com/jrsteele09/school-portal/portal"
	"github.com/jrsteele09/school-portal/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

const dateLayout = "2006-01-02 15:04"

var (
	readPasswordFunc = term.ReadPassword // mockable
	nowFunc          = time.Now          // mockable

	errHelp = errors.New("help provided")
)

// loginPrompt is the CLI's navigator: there is no page to move to, so it
// tells the user how to start a new session.
type loginPrompt struct {
	out io.Writer
}

func (p loginPrompt) Navigate(string) {
	fmt.Fprintln(p.out, "You are not logged in. Run `portal login -username USERNAME` to sign in.")
}

type commandLine struct {
	appName string
	gw      *gateway.Gateway
	client  *portal.Client
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME    - sign in; the password is prompted next")
	fmt.Fprintln(cli.out, "  logout                      - end the session")
	fmt.Fprintln(cli.out, "  whoami                      - show the logged in user")
	fmt.Fprintln(cli.out, "  dashboard                   - latest announcements and pending homework")
	fmt.Fprintln(cli.out, "  feed [-page N] [-per-page N]")
	fmt.Fprintln(cli.out, "  homeworks [-status all|pending|completed|overdue] [-child ID]")
	fmt.Fprintln(cli.out, "  notes [-child ID]           - grades")
	fmt.Fprintln(cli.out, "  inbox | sent                - mail")
	fmt.Fprintln(cli.out, "  calendar")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "login":
		return cli.login(ctx, rest)
	case "logout", "whoami", "dashboard", "feed", "homeworks", "notes", "inbox", "sent", "calendar":
	default:
		cli.printUsage()
		return errHelp
	}

	if !cli.gw.CheckAuth(ctx) {
		return errHelp
	}
	switch cmd {
	case "logout":
		return cli.gw.Logout(ctx)
	case "whoami":
		return cli.whoami(ctx)
	case "dashboard":
		return cli.dashboard(ctx)
	case "feed":
		return cli.feed(ctx, rest)
	case "homeworks":
		return cli.homeworks(ctx, rest)
	case "notes":
		return cli.notes(ctx, rest)
	case "inbox":
		return cli.mail(ctx, cli.client.Mail.Inbox, "From")
	case "sent":
		return cli.mail(ctx, cli.client.Mail.Sent, "To")
	default:
		return cli.calendar(ctx)
	}
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	loginCmd := flag.NewFlagSet("login", flag.ContinueOnError)
	loginCmd.SetOutput(cli.out)
	username := loginCmd.String("username", "", "Your username. The password will be prompted next.")
	if err := loginCmd.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		loginCmd.Usage()
		return errHelp
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if len(pwd) == 0 {
		loginCmd.Usage()
		return errHelp
	}

	s, err := cli.gw.Login(ctx, *username, string(pwd))
	if err != nil {
		return err
	}
	if cli.appName != "" {
		displayAppname(cli.appName)
	}
	fmt.Fprintf(cli.out, "Logged in as %s (%s)\n", s.User.Username, s.User.Role)
	return nil
}

func (cli *commandLine) whoami(ctx context.Context) error {
	s, err := cli.gw.Sessions().Load(ctx)
	if err != nil {
		return err
	}
	u := s.User
	fmt.Fprintf(cli.out, "%s <%s>\n", u.Username, u.Email)
	fmt.Fprintf(cli.out, "Role:   %s\n", u.Role)
	if names := u.GroupNames(); len(names) > 0 {
		fmt.Fprintf(cli.out, "Groups: %s\n", strings.Join(names, ", "))
	}

	claims, err := sessions.ParseAccessClaims(s.AccessToken)
	if err != nil {
		log.Debug().Err(err).Msg("Access token claims unreadable")
		return nil
	}
	if left, ok := claims.ExpiresIn(nowFunc()); ok {
		if left > 0 {
			fmt.Fprintf(cli.out, "Token expires in %s\n", left.Round(time.Minute))
		} else {
			fmt.Fprintln(cli.out, "Token has expired")
		}
	}
	return nil
}

func (cli *commandLine) dashboard(ctx context.Context) error {
	d, err := cli.client.Dashboard(ctx)
	if err != nil {
		return err
	}
	if d.User.Username != "" {
		fmt.Fprintf(cli.out, "Welcome, %s\n\n", d.User.Username)
	}
	fmt.Fprintln(cli.out, "Latest announcements")
	cli.printAnnouncements(d.Announcements)
	fmt.Fprintln(cli.out, "\nPending homework")
	cli.printHomework(d.PendingHomework)
	return nil
}

func (cli *commandLine) feed(ctx context.Context, args []string) error {
	feedCmd := flag.NewFlagSet("feed", flag.ContinueOnError)
	feedCmd.SetOutput(cli.out)
	page := feedCmd.Int("page", 1, "Page number")
	perPage := feedCmd.Int("per-page", 10, "Announcements per page")
	if err := feedCmd.Parse(args); err != nil {
		return err
	}

	p, err := cli.client.Feed.List(ctx, *page, *perPage)
	if err != nil {
		return err
	}
	cli.printAnnouncements(p.Announcements)
	fmt.Fprintf(cli.out, "Page %d of %d (%d announcements)\n", p.Page, p.Pages, p.Total)
	return nil
}

func (cli *commandLine) homeworks(ctx context.Context, args []string) error {
	hwCmd := flag.NewFlagSet("homeworks", flag.ContinueOnError)
	hwCmd.SetOutput(cli.out)
	status := hwCmd.String("status", "", "all, pending, completed or overdue")
	child := hwCmd.Int("child", 0, "Child id (parents)")
	if err := hwCmd.Parse(args); err != nil {
		return err
	}

	hw, err := cli.client.Homeworks.List(ctx, portal.HomeworkFilter{
		Status:  portal.HomeworkStatus(*status),
		ChildID: *child,
	})
	if err != nil {
		return err
	}
	cli.printHomework(hw)
	return nil
}

func (cli *commandLine) notes(ctx context.Context, args []string) error {
	notesCmd := flag.NewFlagSet("notes", flag.ContinueOnError)
	notesCmd.SetOutput(cli.out)
	child := notesCmd.Int("child", 0, "Child id (parents)")
	if err := notesCmd.Parse(args); err != nil {
		return err
	}

	notes, err := cli.client.Notes.List(ctx, *child)
	if err != nil {
		return err
	}
	w := cli.table()
	fmt.Fprintln(w, "SUBJECT\tGRADE\tSTUDENT\tTEACHER\tDATE")
	for _, n := range notes {
		fmt.Fprintf(w, "%s\t%g/%g\t%s\t%s\t%s\n", n.Subject, n.Value, n.MaxValue, n.Student, n.Teacher, formatTime(n.CreatedAt))
	}
	return w.Flush()
}

func (cli *commandLine) mail(ctx context.Context, list func(context.Context) ([]portal.Message, error), who string) error {
	msgs, err := list(ctx)
	if err != nil {
		return err
	}
	w := cli.table()
	fmt.Fprintf(w, "ID\t\t%s\tSUBJECT\tDATE\n", strings.ToUpper(who))
	for _, m := range msgs {
		unread := ""
		if !m.IsRead && who == "From" {
			unread = "*"
		}
		peer := m.Sender
		if who != "From" {
			peer = strings.Join(m.Recipients, ", ")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", m.ID, unread, peer, m.Subject, formatTime(m.CreatedAt))
	}
	return w.Flush()
}

func (cli *commandLine) calendar(ctx context.Context) error {
	events, err := cli.client.Calendar.List(ctx)
	if err != nil {
		return err
	}
	w := cli.table()
	fmt.Fprintln(w, "START\tEND\tTITLE\tGROUP\tLOCATION")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", formatTime(e.StartTime), formatTime(e.EndTime), e.Title, e.GroupName, e.Location)
	}
	return w.Flush()
}

func (cli *commandLine) printAnnouncements(list []portal.Announcement) {
	w := cli.table()
	fmt.Fprintln(w, "DATE\tAUTHOR\tTITLE")
	for _, a := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\n", formatTime(a.CreatedAt), a.Author, a.Title)
	}
	_ = w.Flush()
}

func (cli *commandLine) printHomework(list []portal.Homework) {
	w := cli.table()
	fmt.Fprintln(w, "DUE\tGROUP\tTITLE\tDONE\tATTACHMENT")
	for _, h := range list {
		done, attachment := "", ""
		if h.IsCompleted {
			done = "yes"
		}
		if id := utils.Value(h.AttachmentID); id > 0 {
			attachment = fmt.Sprintf("#%d", id)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", formatTime(h.DueDate), h.GroupName, h.Title, done, attachment)
	}
	_ = w.Flush()
}

func (cli *commandLine) table() *tabwriter.Writer {
	return tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
}

func formatTime(t portal.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}
