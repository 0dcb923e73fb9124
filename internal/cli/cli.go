// Package cli implements hrportalctl, a command line front end over the API client.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"hrportal/internal/client"
	"hrportal/internal/domain/core"
	"hrportal/internal/domain/requests"
)

var ErrUsage = errors.New("usage")

const defaultBaseURL = "http://localhost:3000"

type Runner struct {
	Client *client.Client
	Out    io.Writer
}

// NewRunner builds a client from HRPORTAL_URL and HRPORTAL_TOKEN.
func NewRunner(out io.Writer) *Runner {
	baseURL := os.Getenv("HRPORTAL_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := client.New(baseURL)
	c.SetToken(os.Getenv("HRPORTAL_TOKEN"))
	return &Runner{Client: c, Out: out}
}

func (r *Runner) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usageError()
	}

	switch args[0] {
	case "register":
		return r.runRegister(ctx, args[1:])
	case "login":
		return r.runLogin(ctx, args[1:])
	case "profile":
		return r.print(r.Client.Profile(ctx))
	case "guest":
		return r.print(r.Client.GuestContent(ctx))
	case "dashboard":
		return r.print(r.Client.AdminDashboard(ctx))
	case "employees":
		return r.runEmployees(ctx, args[1:])
	case "departments":
		return r.runDepartments(ctx, args[1:])
	case "requests":
		return r.runRequests(ctx, args[1:])
	case "users":
		return r.runUsers(ctx, args[1:])
	default:
		return usageError()
	}
}

func usageError() error {
	return fmt.Errorf("%w: hrportalctl <register|login|profile|guest|dashboard|employees|departments|requests|users> [...]", ErrUsage)
}

func (r *Runner) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.String("username", "", "account username (email)")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "", "admin or user")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return r.print(r.Client.Register(ctx, *username, *password, *role))
}

// runLogin prints the issued token so it can be exported as HRPORTAL_TOKEN.
func (r *Runner) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "account username (email)")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := r.Client.Login(ctx, *username, *password); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.Out, r.Client.Token())
	return err
}

func (r *Runner) runEmployees(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: hrportalctl employees <list|create|update|delete|export>", ErrUsage)
	}
	fs := flag.NewFlagSet("employees "+args[0], flag.ContinueOnError)
	id := fs.Int64("id", 0, "employee record id")
	employeeID := fs.String("employee-id", "", "employee number")
	email := fs.String("email", "", "employee email")
	position := fs.String("position", "", "position")
	department := fs.String("department", "", "department name")
	hireDate := fs.String("hire-date", "", "hire date YYYY-MM-DD")
	format := fs.String("format", "pdf", "export format: pdf, xlsx or csv")
	output := fs.String("o", "", "export output file")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return r.print(r.Client.ListEmployees(ctx))
	case "create":
		return r.print(r.Client.CreateEmployee(ctx, core.Employee{
			EmployeeID: *employeeID,
			UserEmail:  *email,
			Position:   *position,
			Department: *department,
			HireDate:   *hireDate,
		}))
	case "update":
		patch := core.EmployeePatch{}
		fs.Visit(func(f *flag.Flag) {
			value := f.Value.String()
			switch f.Name {
			case "employee-id":
				patch.EmployeeID = &value
			case "email":
				value = client.NormalizeUsername(value)
				patch.UserEmail = &value
			case "position":
				patch.Position = &value
			case "department":
				patch.Department = &value
			case "hire-date":
				patch.HireDate = &value
			}
		})
		return r.print(r.Client.UpdateEmployee(ctx, *id, patch))
	case "delete":
		return r.Client.DeleteEmployee(ctx, *id)
	case "export":
		data, err := r.Client.ExportEmployees(ctx, *format)
		if err != nil {
			return err
		}
		if *output == "" {
			*output = "employee-roster." + *format
		}
		if err := os.WriteFile(*output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", *output, err)
		}
		_, err = fmt.Fprintf(r.Out, "wrote %s\n", *output)
		return err
	default:
		return fmt.Errorf("unknown employees command %q", args[0])
	}
}

func (r *Runner) runDepartments(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: hrportalctl departments <list|create|update|delete>", ErrUsage)
	}
	fs := flag.NewFlagSet("departments "+args[0], flag.ContinueOnError)
	id := fs.Int64("id", 0, "department id")
	name := fs.String("name", "", "department name")
	description := fs.String("description", "", "department description")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return r.print(r.Client.ListDepartments(ctx))
	case "create":
		return r.print(r.Client.CreateDepartment(ctx, core.Department{Name: *name, Description: *description}))
	case "update":
		patch := core.DepartmentPatch{}
		fs.Visit(func(f *flag.Flag) {
			value := f.Value.String()
			switch f.Name {
			case "name":
				patch.Name = &value
			case "description":
				patch.Description = &value
			}
		})
		return r.print(r.Client.UpdateDepartment(ctx, *id, patch))
	case "delete":
		return r.Client.DeleteDepartment(ctx, *id)
	default:
		return fmt.Errorf("unknown departments command %q", args[0])
	}
}

func (r *Runner) runRequests(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: hrportalctl requests <list|create|delete>", ErrUsage)
	}
	fs := flag.NewFlagSet("requests "+args[0], flag.ContinueOnError)
	id := fs.Int64("id", 0, "request id")
	reqType := fs.String("type", "", "request type")
	items := fs.String("items", "", "comma separated name:qty pairs")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return r.print(r.Client.ListRequests(ctx))
	case "create":
		parsed, err := ParseItems(*items)
		if err != nil {
			return err
		}
		return r.print(r.Client.CreateRequest(ctx, *reqType, parsed))
	case "delete":
		return r.Client.DeleteRequest(ctx, *id)
	default:
		return fmt.Errorf("unknown requests command %q", args[0])
	}
}

func (r *Runner) runUsers(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: hrportalctl users <list|create|update|delete>", ErrUsage)
	}
	fs := flag.NewFlagSet("users "+args[0], flag.ContinueOnError)
	id := fs.Int64("id", 0, "account id")
	username := fs.String("username", "", "account username (email)")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "", "admin or user")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	in := client.AccountInput{Username: *username, Password: *password, Role: *role}

	switch args[0] {
	case "list":
		return r.print(r.Client.ListUsers(ctx))
	case "create":
		return r.print(r.Client.CreateUser(ctx, in))
	case "update":
		return r.print(r.Client.UpdateUser(ctx, *id, in))
	case "delete":
		return r.Client.DeleteUser(ctx, *id)
	default:
		return fmt.Errorf("unknown users command %q", args[0])
	}
}

// ParseItems reads "Laptop:1,Mouse:2". A missing qty means 1.
func ParseItems(raw string) ([]requests.Item, error) {
	items := []requests.Item{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, qtyRaw, found := strings.Cut(part, ":")
		qty := 1
		if found {
			parsed, err := strconv.Atoi(strings.TrimSpace(qtyRaw))
			if err != nil {
				return nil, fmt.Errorf("item %q: invalid qty", part)
			}
			qty = parsed
		}
		items = append(items, requests.Item{Name: strings.TrimSpace(name), Qty: qty})
	}
	return items, nil
}

func (r *Runner) print(value any, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(r.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
