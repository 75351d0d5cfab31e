package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"go-inventory-client/internal/client"
	"go-inventory-client/internal/model"
	"go-inventory-client/internal/view"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func runLogin(api *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	screen := view.NewAuthScreen(api.Auth)
	sess, err := screen.Login(*email, *password)
	if err != nil {
		return err
	}
	msg, _ := screen.Banner.Message()
	fmt.Printf("%s Welcome, %s.\n", msg, sess.FullName)
	return nil
}

func runRegister(api *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password, at least 6 characters")
	name := fs.String("name", "", "full name")
	fs.Parse(args)

	screen := view.NewAuthScreen(api.Auth)
	if err := screen.Register(*email, *password, *name); err != nil {
		return err
	}
	msg, _ := screen.Banner.Message()
	fmt.Println(msg)
	return nil
}

func runLogout(api *client.Client, _ []string) error {
	if err := view.NewAuthScreen(api.Auth).Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(api *client.Client, _ []string) error {
	user := api.Auth.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.FullName, user.Email)
	return nil
}

func runDashboard(api *client.Client, _ []string) error {
	dash := view.NewDashboard(api.Products)
	if err := dash.Refresh(); err != nil {
		return bannerError(dash.Banner, err)
	}
	printDashboard(os.Stdout, dash)
	return nil
}

func runList(api *client.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	term := fs.String("search", "", "match name or SKU")
	low := fs.Bool("low", false, "only low-stock products")
	fs.Parse(args)

	list := view.NewProductList(api.Products)
	if err := list.Load(); err != nil {
		return bannerError(list.Banner, err)
	}
	if *term != "" {
		list.SetSearch(*term)
	}
	if *low {
		list.SetFilter(view.FilterLowStock)
	}
	printProducts(os.Stdout, list.Visible())
	return nil
}

func runGet(api *client.Client, args []string) error {
	id, err := oneArg(args, "product id")
	if err != nil {
		return err
	}
	p, err := api.Products.GetProductByID(id)
	if err != nil {
		return err
	}
	printProduct(os.Stdout, p)
	return nil
}

func runCreate(api *client.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	var fields model.ProductFields
	price := bindFields(fs, &fields)
	fs.Parse(args)

	if err := parsePrice(*price, &fields); err != nil {
		return err
	}
	form := view.NewProductForm(api.Products)
	p, err := form.Submit(fields)
	if err != nil {
		return bannerError(form.Banner, err)
	}
	fmt.Printf("Created %s (%s).\n", p.Name, p.ID)
	return nil
}

func runUpdate(api *client.Client, args []string) error {
	if len(args) == 0 {
		return errors.New("missing product id")
	}
	id := args[0]

	form := view.NewProductForm(api.Products)
	if err := form.Load(id); err != nil {
		return err
	}

	// Flags default to the stored values so unset ones are kept.
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	fields := form.Fields()
	price := bindFields(fs, &fields)
	fs.Parse(args[1:])

	if err := parsePrice(*price, &fields); err != nil {
		return err
	}
	p, err := form.Submit(fields)
	if err != nil {
		return bannerError(form.Banner, err)
	}
	fmt.Printf("Updated %s (%s).\n", p.Name, p.ID)
	return nil
}

func runDelete(api *client.Client, args []string) error {
	id, err := oneArg(args, "product id")
	if err != nil {
		return err
	}
	list := view.NewProductList(api.Products)
	if err := list.Delete(id); err != nil {
		return bannerError(list.Banner, err)
	}
	fmt.Printf("Deleted. %d products remain.\n", len(list.Products()))
	return nil
}

func runLowStock(api *client.Client, _ []string) error {
	products, err := api.Products.GetLowStockProducts()
	if err != nil {
		return err
	}
	printProducts(os.Stdout, products)
	return nil
}

func runStats(api *client.Client, _ []string) error {
	s, err := api.Products.GetStats()
	if err != nil {
		return err
	}
	printStats(os.Stdout, *s)
	return nil
}

func runCategory(api *client.Client, args []string) error {
	category, err := oneArg(args, "category")
	if err != nil {
		return err
	}
	products, err := api.Products.GetProductsByCategory(category)
	if err != nil {
		return err
	}
	printProducts(os.Stdout, products)
	return nil
}

func runExport(api *client.Client, args []string) error {
	path, err := oneArg(args, "output file")
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := api.Products.ExportCSV(f)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d products to %s.\n", n, path)
	return nil
}

func runImport(api *client.Client, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	workers := fs.Int("workers", 4, "concurrent create requests")
	fs.Parse(args)

	path, err := oneArg(fs.Args(), "input file")
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := api.Products.ImportCSV(f, *workers)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d products.\n", len(result.Created))

	lines := make([]int, 0, len(result.Failed))
	for line := range result.Failed {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	for _, line := range lines {
		fmt.Printf("  line %d: %v\n", line, result.Failed[line])
	}
	if len(lines) > 0 {
		return errors.Errorf("%d rows failed", len(lines))
	}
	return nil
}

func runWatch(api *client.Client, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dash := view.NewDashboard(api.Products)
	if err := dash.Refresh(); err != nil {
		return bannerError(dash.Banner, err)
	}
	printDashboard(os.Stdout, dash)
	fmt.Println("Watching for stock updates, Ctrl-C to stop.")

	return api.Watch(ctx, func(ev client.Event) {
		fmt.Printf("\n> %s\n", ev.Message)
		if err := dash.Refresh(); err != nil {
			msg, _ := dash.Banner.Message()
			fmt.Fprintln(os.Stderr, msg)
			return
		}
		printDashboard(os.Stdout, dash)
	})
}

func bindFields(fs *flag.FlagSet, f *model.ProductFields) *string {
	fs.StringVar(&f.Name, "name", f.Name, "product name")
	fs.StringVar(&f.SKU, "sku", f.SKU, "stock keeping unit")
	fs.StringVar(&f.Description, "description", f.Description, "description")
	fs.IntVar(&f.Quantity, "quantity", f.Quantity, "units in stock")
	fs.StringVar(&f.Category, "category", f.Category, "category")
	fs.StringVar(&f.ImageURL, "image", f.ImageURL, "image URL")
	return fs.String("price", f.Price.String(), "unit price")
}

func parsePrice(raw string, f *model.ProductFields) error {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return errors.Errorf("invalid price %q", raw)
	}
	f.Price = price
	return nil
}

func oneArg(args []string, what string) (string, error) {
	if len(args) != 1 {
		return "", errors.Errorf("expected one argument: %s", what)
	}
	return args[0], nil
}

// bannerError prefers the message a screen put on its banner.
func bannerError(b *view.Banner, err error) error {
	if msg, kind := b.Message(); kind == view.BannerError && msg != "" && msg != err.Error() {
		return errors.Errorf("%s: %v", msg, err)
	}
	return err
}

func printDashboard(w io.Writer, d *view.Dashboard) {
	printStats(w, d.Stats())
	fmt.Fprintln(w, "\nRecent")
	printProducts(w, d.Recent())
	if low := d.LowStock(); len(low) > 0 {
		fmt.Fprintln(w, "\nLow stock")
		printProducts(w, low)
	}
}

func printStats(w io.Writer, s model.Stats) {
	fmt.Fprintf(w, "Products: %d  Low stock: %d  Value: %s  Categories: %d\n",
		s.Total, s.LowStock, s.Value.StringFixed(2), s.Categories)
}

func printProducts(w io.Writer, products []model.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSKU\tNAME\tCATEGORY\tPRICE\tQTY\t")
	for _, p := range products {
		qty := fmt.Sprint(p.Quantity)
		if p.IsLowStock() {
			qty += " (low)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n", p.ID, p.SKU, p.Name, p.Category, p.Price.StringFixed(2), qty)
	}
	tw.Flush()
}

func printProduct(w io.Writer, p *model.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", p.ID)
	fmt.Fprintf(tw, "Name\t%s\n", p.Name)
	fmt.Fprintf(tw, "SKU\t%s\n", p.SKU)
	fmt.Fprintf(tw, "Description\t%s\n", p.Description)
	fmt.Fprintf(tw, "Price\t%s\n", p.Price.StringFixed(2))
	fmt.Fprintf(tw, "Quantity\t%d\n", p.Quantity)
	fmt.Fprintf(tw, "Category\t%s\n", p.Category)
	fmt.Fprintf(tw, "Image\t%s\n", p.ImageURL)
	fmt.Fprintf(tw, "Updated\t%s\n", p.UpdatedAt.Format("2006-01-02 15:04"))
	tw.Flush()
}
