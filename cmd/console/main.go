package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/canulcua123-source/vista-boss/internal/console"
	"github.com/canulcua123-source/vista-boss/internal/domain/model"
)

// The console binary drives the user-administration screen against a running
// server: list the users, open the creation form, or run the delete
// confirmation flow.
func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]
	ctx := context.Background()

	switch cmd {
	case "list":
		runList(ctx, args)
	case "create":
		runCreate(ctx, args)
	case "delete":
		runDelete(ctx, args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: console <list|create|delete> [flags]")
}

func commonFlags(fs *flag.FlagSet) (apiURL, email, password *string) {
	apiURL = fs.String("api", "http://localhost:8080", "base URL of the users API")
	email = fs.String("login-email", "", "admin email to authenticate with")
	password = fs.String("login-password", "", "admin password to authenticate with")
	return
}

func newView(ctx context.Context, apiURL, email, password string) *console.ListView {
	client := console.NewClient(apiURL)
	if email != "" {
		if err := client.Login(ctx, email, password); err != nil {
			log.Fatalf("login failed: %v", err)
		}
	}
	return console.NewListView(client, console.LogNotifier{})
}

func runList(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	apiURL, email, password := commonFlags(fs)
	fs.Parse(args)

	view := newView(ctx, *apiURL, *email, *password)
	view.Activate(ctx)
	renderTable(view)
}

func runCreate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	apiURL, email, password := commonFlags(fs)
	name := fs.String("nombre", "", "display name of the new user")
	userEmail := fs.String("email", "", "email of the new user")
	userPassword := fs.String("password", "", "password of the new user")
	role := fs.String("rol", "", "role of the new user (defaults to comerciante)")
	fs.Parse(args)

	view := newView(ctx, *apiURL, *email, *password)
	view.Activate(ctx)

	form := view.OpenForm()
	form.SetInput(model.NewUserInput{
		Name:     *name,
		Email:    *userEmail,
		Password: *userPassword,
		Role:     *role,
	})
	form.Submit(ctx)

	if !form.Closed() {
		for field, message := range form.FieldErrors() {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, message)
		}
		os.Exit(1)
	}
	renderTable(view)
}

func runDelete(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	apiURL, email, password := commonFlags(fs)
	id := fs.Int64("id", 0, "id of the user to delete")
	yes := fs.Bool("y", false, "skip the confirmation prompt")
	fs.Parse(args)

	view := newView(ctx, *apiURL, *email, *password)
	view.Activate(ctx)

	if !view.RequestDelete(*id) {
		fmt.Fprintln(os.Stderr, "user cannot be deleted (admin account or unknown id)")
		os.Exit(1)
	}

	if !*yes && !confirm(*id) {
		view.CancelDelete()
		fmt.Println("cancelled")
		return
	}

	view.ConfirmDelete(ctx)
	renderTable(view)
}

func confirm(id int64) bool {
	fmt.Printf("delete user %d? [y/N]: ", id)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func renderTable(view *console.ListView) {
	if view.Loading() {
		fmt.Println("loading...")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tROL\tBADGE\tDELETABLE")
	for _, row := range view.Rows() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%v\n",
			row.User.ID, row.User.Name, row.User.Email, row.User.Role, row.Badge, row.CanDelete)
	}
	w.Flush()
}
