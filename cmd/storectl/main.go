// Command storectl is the operator tool for the storefront database.
//
//	storectl orders
//	storectl create-admin -email admin@example.com -name Admin -password secret
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/store"
)

const usage = `usage: storectl <command> [flags]

commands:
  orders         list every order, newest first
  create-admin   create an admin account or promote an existing one
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	config.Load()

	var err error
	switch os.Args[1] {
	case "orders":
		err = runOrders(os.Args[2:], os.Stdout)
	case "create-admin":
		err = runCreateAdmin(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runOrders(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	status := fs.String("status", "", "only show orders with this payment status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *status != "" && !models.PaymentStatus(*status).Valid() {
		return fmt.Errorf("unknown payment status %q", *status)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, closeDB, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDB()

	all, err := store.NewOrderStore(db).ListAll(ctx)
	if err != nil {
		return err
	}
	return renderOrders(out, filterByStatus(all, models.PaymentStatus(*status)))
}

func filterByStatus(all []models.Order, status models.PaymentStatus) []models.Order {
	if status == "" {
		return all
	}
	out := make([]models.Order, 0, len(all))
	for _, o := range all {
		if o.PaymentStatus == status {
			out = append(out, o)
		}
	}
	return out
}

func renderOrders(out io.Writer, all []models.Order) error {
	table := tablewriter.NewWriter(out)
	table.Header("Order", "Product", "Amount", "Customer", "Method", "Status", "Created")
	for _, o := range all {
		row := []string{
			o.OrderNumber,
			o.ProductTitle,
			strconv.FormatFloat(o.AmountDue(), 'f', 2, 64),
			o.UserEmail,
			string(o.PaymentMethod),
			string(o.PaymentStatus),
			o.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func runCreateAdmin(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	email := fs.String("email", "", "admin e-mail (required)")
	name := fs.String("name", "Admin", "display name")
	password := fs.String("password", "", "password (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		fs.Usage()
		return errors.New("-email and -password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, closeDB, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := store.NewUserStore(db).UpsertAdmin(ctx, *name, *email, string(hash)); err != nil {
		return err
	}
	log.Println("[USER] [INFO] admin account ready:", *email)
	return nil
}
