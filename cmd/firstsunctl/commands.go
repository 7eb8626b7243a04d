// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/olegiv/firstsun-go/internal/dashboard"
	"github.com/olegiv/firstsun-go/internal/i18n"
	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/validation"
)

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signin":
		return a.signIn(ctx, args)
	case "signup":
		return a.signUp(ctx, args)
	case "signout":
		return a.auth.SignOut(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "lang":
		return a.lang(args)
	case "t":
		return a.translate(ctx, args)
	case "products":
		return runResource[model.Product, model.ProductInput](ctx, a, "Product", a.client.Products(), func(p model.Product, lang string) string {
			l := p.Localize(lang)
			return l.Name + "\t" + l.Badge
		}, args)
	case "partners":
		return runResource[model.Partner, model.PartnerInput](ctx, a, "Partner", a.client.Partners(), func(p model.Partner, _ string) string {
			return fmt.Sprintf("%s\t%d", p.Name, p.DisplayOrder)
		}, args)
	case "articles":
		return runResource[model.Article, model.ArticleInput](ctx, a, "Article", a.client.Articles(), func(ar model.Article, lang string) string {
			l := ar.Localize(lang)
			status := "draft"
			if ar.Published {
				status = "published"
			}
			return l.Title + "\t" + status
		}, args)
	case "gallery":
		return runResource[model.GalleryItem, model.GalleryItemInput](ctx, a, "Gallery item", a.client.Gallery(), func(g model.GalleryItem, _ string) string {
			return a.locale.T(g.TitleKey) + "\t" + g.Category
		}, args)
	case "translations":
		return runResource[model.Translation, model.TranslationInput](ctx, a, "Translation", a.client.Translations(), func(t model.Translation, lang string) string {
			text := t.En
			if lang == model.LangArabic {
				text = t.Ar
			}
			return t.Key + "\t" + text
		}, args)
	case "users":
		return a.usersCmd(ctx, args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (a *app) signIn(ctx context.Context, args []string) error {
	fs := newFlagSet("signin")
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *email == "" {
		return fmt.Errorf("%w: signin -email is required", errUsage)
	}
	pw, err := a.password(*password, "Password: ")
	if err != nil {
		return err
	}
	if err := a.auth.SignIn(ctx, *email, pw); err != nil {
		return err
	}
	if err := a.auth.WaitRoles(ctx); err != nil {
		return err
	}
	if !a.auth.HasAccess() {
		_, _ = fmt.Fprintln(a.out, "This account has no dashboard role yet.")
	}
	return nil
}

func (a *app) signUp(ctx context.Context, args []string) error {
	fs := newFlagSet("signup")
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *email == "" {
		return fmt.Errorf("%w: signup -email is required", errUsage)
	}
	pw, err := a.password(*password, "Password: ")
	if err != nil {
		return err
	}
	return a.auth.SignUp(ctx, *email, pw)
}

func (a *app) whoami(ctx context.Context) error {
	user, ok := a.auth.User()
	if !ok {
		return dashboard.ErrSignInRequired
	}
	if err := a.auth.WaitRoles(ctx); err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "id\t%s\n", user.ID)
	_, _ = fmt.Fprintf(w, "email\t%s\n", user.Email)
	_, _ = fmt.Fprintf(w, "admin\t%t\n", a.auth.IsAdmin())
	_, _ = fmt.Fprintf(w, "editor\t%t\n", a.auth.IsEditor())
	_, _ = fmt.Fprintf(w, "dashboard\t%t\n", a.auth.HasAccess())
	return w.Flush()
}

func (a *app) lang(args []string) error {
	switch len(args) {
	case 0:
	case 1:
		if err := a.locale.SetLanguage(args[0]); err != nil {
			return fmt.Errorf("%w: lang takes ar or en", errUsage)
		}
	default:
		return fmt.Errorf("%w: lang [ar|en]", errUsage)
	}
	s := a.locale.Snapshot()
	_, _ = fmt.Fprintf(a.out, "%s %s\n", s.Lang, s.Dir)
	return nil
}

// translate looks key up with the server's translation rows laid over the
// built-in table. An unreachable server leaves the built-in table.
func (a *app) translate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: t <key>", errUsage)
	}
	if rows, err := a.client.PublicTranslations(ctx); err != nil {
		a.logger.Warn("using built-in translations", "error", err)
	} else {
		a.catalog.SetOverlay(i18n.OverlayFromRows(rows))
	}
	if !a.catalog.Has(args[0]) {
		a.logger.Warn("unknown translation key", "key", args[0])
	}
	_, _ = fmt.Fprintln(a.out, a.locale.T(args[0]))
	return nil
}

// runResource serves the list, create, update and delete commands for one
// content type.
func runResource[T dashboard.Record, In any](ctx context.Context, a *app, label string, remote dashboard.Remote[T, In],
	describe func(T, string) string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: %s list|create|update|delete", errUsage, strings.ToLower(label))
	}
	if err := a.auth.WaitRoles(ctx); err != nil {
		return err
	}
	if err := a.auth.RequireAccess(); err != nil {
		return err
	}

	m := dashboard.NewManager[T, In](remote, dashboard.ManagerOptions{
		Label:     label,
		Validator: a.validate,
		Notifier:  a.notify,
		Logger:    a.logger,
	})

	switch args[0] {
	case "list":
		fs := newFlagSet("list")
		query := fs.String("q", "", "Search text")
		if err := fs.Parse(args[1:]); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		rows, err := m.List(ctx)
		if err != nil {
			return err
		}
		lang := a.locale.Language()
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, row := range m.Filter(rows, *query, lang) {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", row.RecordID(), describe(row, lang))
		}
		return w.Flush()
	case "create", "update":
		id, in, err := parseSave[In](args[0], args[1:], a.in)
		if err != nil {
			return err
		}
		if id == "" {
			err = m.StartAdd()
		} else {
			err = m.StartEdit(id)
		}
		if err != nil {
			return err
		}
		row, err := m.Save(ctx, in)
		if err != nil {
			a.printFieldErrors(m.FieldErrors())
			return err
		}
		_, _ = fmt.Fprintln(a.out, row.RecordID())
		return nil
	case "delete":
		id, yes, err := parseDelete(args[1:])
		if err != nil {
			return err
		}
		return a.confirm(ctx, m.RequestDelete(id), fmt.Sprintf("Delete %s %s?", strings.ToLower(label), id), yes)
	default:
		return fmt.Errorf("%w: unknown %s command %q", errUsage, strings.ToLower(label), args[0])
	}
}

func (a *app) usersCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: users list|create|passwd|delete", errUsage)
	}
	if _, ok := a.auth.User(); !ok {
		return dashboard.ErrSignInRequired
	}

	switch args[0] {
	case "list":
		users, err := a.users.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, u := range users {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Email, strings.Join(u.Roles, ","))
		}
		return w.Flush()
	case "create":
		fs := newFlagSet("users create")
		email := fs.String("email", "", "Account email")
		password := fs.String("password", "", "Account password")
		role := fs.String("role", model.RoleEditor, "admin or editor")
		if err := fs.Parse(args[1:]); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		pw, err := a.password(*password, "Password: ")
		if err != nil {
			return err
		}
		u, err := a.users.Create(ctx, model.CreateUserInput{Email: *email, Password: pw, Role: *role})
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(a.out, u.ID)
		return nil
	case "passwd":
		fs := newFlagSet("users passwd")
		email := fs.String("email", "", "Account email")
		password := fs.String("password", "", "New password")
		if err := fs.Parse(args[1:]); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		if *email == "" {
			return fmt.Errorf("%w: users passwd -email is required", errUsage)
		}
		form := model.PasswordForm{NewPassword: *password, ConfirmPassword: *password}
		if *password == "" {
			var err error
			if form.NewPassword, err = a.prompt("New password: "); err != nil {
				return err
			}
			if form.ConfirmPassword, err = a.prompt("Confirm password: "); err != nil {
				return err
			}
		}
		return a.users.ChangePassword(ctx, *email, form)
	case "delete":
		id, yes, err := parseDelete(args[1:])
		if err != nil {
			return err
		}
		return a.confirm(ctx, a.users.RequestDelete(id), fmt.Sprintf("Delete user %s?", id), yes)
	default:
		return fmt.Errorf("%w: unknown users command %q", errUsage, args[0])
	}
}

// confirm asks "[y/N]" unless yes is set, then confirms or cancels d.
func (a *app) confirm(ctx context.Context, d *dashboard.DeleteConfirmation, question string, yes bool) error {
	if !yes {
		answer, err := a.prompt(question + " [y/N] ")
		if err != nil {
			d.Cancel()
			return err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
		default:
			d.Cancel()
			_, _ = fmt.Fprintln(a.out, "Cancelled")
			return nil
		}
	}
	return d.Confirm(ctx)
}

// password returns flagValue, then FSUN_PASSWORD, then a prompted line.
func (a *app) password(flagValue, label string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv("FSUN_PASSWORD"); v != "" {
		return v, nil
	}
	return a.prompt(label)
}

func (a *app) prompt(label string) (string, error) {
	_, _ = fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parseSave reads "create -file F" or "update <id> -file F". The file holds
// the record as JSON and "-" reads stdin.
func parseSave[In any](cmd string, args []string, stdin io.Reader) (id string, in In, err error) {
	if cmd == "update" && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		id, args = args[0], args[1:]
	}
	fs := newFlagSet(cmd)
	file := fs.String("file", "", "JSON record, - for stdin")
	if err := fs.Parse(args); err != nil {
		return "", in, fmt.Errorf("%w: %v", errUsage, err)
	}
	if cmd == "update" && id == "" && fs.NArg() == 1 {
		id = fs.Arg(0)
	} else if fs.NArg() != 0 {
		*file = ""
	}
	if *file == "" || (cmd == "update") != (id != "") {
		if cmd == "update" {
			return "", in, fmt.Errorf("%w: update <id> -file <json>", errUsage)
		}
		return "", in, fmt.Errorf("%w: create -file <json>", errUsage)
	}

	r := stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			return "", in, fmt.Errorf("opening record file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return "", in, fmt.Errorf("%w: decoding %s: %v", errUsage, *file, err)
	}
	return id, in, nil
}

// printFieldErrors writes one "field: message" line per invalid field.
func (a *app) printFieldErrors(errs validation.Errors) {
	if len(errs) == 0 {
		return
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		_, _ = fmt.Fprintf(a.errOut, "  %s: %s\n", f, errs[f])
	}
}

func parseDelete(args []string) (id string, yes bool, err error) {
	fs := newFlagSet("delete")
	y := fs.Bool("y", false, "Do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return "", false, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return "", false, fmt.Errorf("%w: delete [-y] <id>", errUsage)
	}
	return fs.Arg(0), *y, nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
