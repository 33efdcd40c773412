package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shyntr/shyntr/internal/oidcclient"
	"github.com/shyntr/shyntr/internal/tenant"
	"github.com/shyntr/shyntr/pkg/client"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "clients":
		err = runClients(os.Args[2:])
	case "client":
		err = runClient(os.Args[2:])
	case "create-client":
		err = runCreateClient(os.Args[2:])
	case "delete-client":
		err = runDeleteClient(os.Args[2:])
	case "tenants":
		err = runTenants(os.Args[2:])
	case "create-tenant":
		err = runCreateTenant(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`Usage: admincli <command> [flags]

Commands:
  clients         List OIDC clients
  client          Show one OIDC client (-id)
  create-client   Register an OIDC client (-id, -name, -redirect-uris, -public)
  delete-client   Remove an OIDC client (-id)
  tenants         List tenants
  create-tenant   Create a tenant (-name, -display-name)
  stats           Show dashboard statistics

Common flags:
  -url            Registry base URL (default ` + defaultBaseURL + `)`)
}

func newClient(fs *flag.FlagSet) (func() *client.Client, *flag.FlagSet) {
	baseURL := fs.String("url", defaultBaseURL, "registry base URL")
	return func() *client.Client {
		return client.New(client.Config{BaseURL: *baseURL, Timeout: 15 * time.Second})
	}, fs
}

func runClients(args []string) error {
	build, fs := newClient(flag.NewFlagSet("clients", flag.ExitOnError))
	if err := fs.Parse(args); err != nil {
		return err
	}

	clients, err := build().ListClients(context.Background())
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		fmt.Println("No OIDC clients registered")
		return nil
	}
	for _, c := range clients {
		kind := "confidential"
		if c.Public {
			kind = "public"
		}
		fmt.Printf("%-30s %-12s %s\n", c.ClientID, kind, c.Name)
	}
	return nil
}

func runClient(args []string) error {
	build, fs := newClient(flag.NewFlagSet("client", flag.ExitOnError))
	id := fs.String("id", "", "client_id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	c, err := build().GetClient(context.Background(), *id)
	if err != nil {
		return err
	}
	return printJSON(c)
}

func runCreateClient(args []string) error {
	build, fs := newClient(flag.NewFlagSet("create-client", flag.ExitOnError))
	id := fs.String("id", "", "client_id")
	name := fs.String("name", "", "display name")
	tenantID := fs.String("tenant", "", "tenant id")
	redirectURIs := fs.String("redirect-uris", "", "comma-separated redirect URIs")
	public := fs.Bool("public", false, "register as a public client")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	p := oidcclient.Payload{
		ClientID: *id,
		TenantID: *tenantID,
		Name:     *name,
		Public:   *public,
	}
	if *redirectURIs != "" {
		p.RedirectURIs = strings.Split(*redirectURIs, ",")
	}

	created, err := build().CreateClient(context.Background(), p)
	if err != nil {
		return err
	}
	fmt.Printf("Created client %s\n", created.ClientID)
	if created.ClientSecret != "" {
		fmt.Printf("Client secret: %s\n", created.ClientSecret)
	}
	return nil
}

func runDeleteClient(args []string) error {
	build, fs := newClient(flag.NewFlagSet("delete-client", flag.ExitOnError))
	id := fs.String("id", "", "client_id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	if err := build().DeleteClient(context.Background(), *id); err != nil {
		return err
	}
	fmt.Printf("Deleted client %s\n", *id)
	return nil
}

func runTenants(args []string) error {
	build, fs := newClient(flag.NewFlagSet("tenants", flag.ExitOnError))
	if err := fs.Parse(args); err != nil {
		return err
	}

	tenants, err := build().ListTenants(context.Background())
	if err != nil {
		return err
	}
	for _, t := range tenants {
		fmt.Printf("%-38s %-20s %s\n", t.ID, t.Name, t.DisplayName)
	}
	return nil
}

func runCreateTenant(args []string) error {
	build, fs := newClient(flag.NewFlagSet("create-tenant", flag.ExitOnError))
	name := fs.String("name", "", "tenant name")
	displayName := fs.String("display-name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("-name is required")
	}

	created, err := build().CreateTenant(context.Background(), tenant.Payload{
		Name:        *name,
		DisplayName: *displayName,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created tenant %s (%s)\n", created.Name, created.ID)
	return nil
}

func runStats(args []string) error {
	build, fs := newClient(flag.NewFlagSet("stats", flag.ExitOnError))
	if err := fs.Parse(args); err != nil {
		return err
	}

	stats, err := build().DashboardStats(context.Background())
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
