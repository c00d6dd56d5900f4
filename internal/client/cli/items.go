package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/client"
	"github.com/dmitrijs2005/pantrykeeper/internal/filex"
	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
	"github.com/dmitrijs2005/pantrykeeper/internal/timex"
)

const defaultExpiringDays = 3

var errUsage = errors.New("usage")

func usage(s string) error {
	return fmt.Errorf("%w: %s", errUsage, s)
}

func (a *App) Categories(ctx context.Context, _ []string) error {
	cats, err := a.client.Categories(ctx)
	if err != nil {
		return err
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	fmt.Fprintln(a.out, strings.Join(names, ", "))
	return nil
}

// parseListArgs reads "[category] [fresh|expired] [query...]". A first
// word naming a category (in any case) or status is taken as a filter, the
// rest is the name search.
func parseListArgs(args []string) client.ListQuery {
	var q client.ListQuery
	if len(args) > 0 {
		if c, ok := categoryWord(args[0]); ok {
			q.Category = c
			args = args[1:]
		}
	}
	if len(args) > 0 && (args[0] == "fresh" || args[0] == "expired") {
		q.Status = args[0]
		args = args[1:]
	}
	q.Search = strings.Join(args, " ")
	return q
}

// categoryWord matches s against the category names ignoring case, so
// "dairy" typed at the prompt selects Dairy.
func categoryWord(s string) (pantry.Category, bool) {
	for _, c := range pantry.Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

func (a *App) List(ctx context.Context, args []string) error {
	items, err := a.client.ListItems(ctx, parseListArgs(args))
	if err != nil {
		return err
	}
	renderItems(a.out, items, a.now())
	return nil
}

// Add prompts for every field of a new item.
func (a *App) Add(ctx context.Context, _ []string) error {
	var item pantry.Item
	var err error

	if item.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if item.Quantity, err = getSimpleText(a.reader, "Enter quantity (e.g. 2 L)", a.out); err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Enter expiration date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}
	if item.ExpirationDate, err = timex.ParseDate(date); err != nil {
		return err
	}
	cat, err := getSimpleText(a.reader, "Enter category ("+strings.Join(pantry.CategoryNames(), ", ")+")", a.out)
	if err != nil {
		return err
	}
	item.Category = pantry.Category(cat)
	if item.ImageURL, err = getSimpleText(a.reader, "Enter image URL (optional)", a.out); err != nil {
		return err
	}

	created, err := a.client.AddItem(ctx, item)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (%s)\n", created.Name, created.ID)
	return nil
}

// Edit prompts for each mutable field; an empty answer keeps the value.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("edit <id>")
	}

	var patch pantry.Patch
	ask := func(prompt string) (string, error) {
		return getSimpleText(a.reader, prompt+" (empty to keep)", a.out)
	}

	v, err := ask("New name")
	if err != nil {
		return err
	}
	if v != "" {
		patch.Name = &v
	}

	q, err := ask("New quantity")
	if err != nil {
		return err
	}
	if q != "" {
		patch.Quantity = &q
	}

	d, err := ask("New expiration date (YYYY-MM-DD)")
	if err != nil {
		return err
	}
	if d != "" {
		date, err := timex.ParseDate(d)
		if err != nil {
			return err
		}
		patch.ExpirationDate = &date
	}

	c, err := ask("New category")
	if err != nil {
		return err
	}
	if c != "" {
		cat := pantry.Category(c)
		patch.Category = &cat
	}

	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	updated, err := a.client.UpdateItem(ctx, args[0], patch)
	if err != nil {
		return err
	}
	renderItems(a.out, []pantry.Item{updated}, a.now())
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete <id>")
	}
	if err := a.client.DeleteItem(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted", args[0])
	return nil
}

func (a *App) Expiring(ctx context.Context, args []string) error {
	days := defaultExpiringDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return usage("expiring [days]")
		}
		days = n
	}

	items, err := a.client.Expiring(ctx, days)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintf(a.out, "Nothing expires within %d days\n", days)
		return nil
	}
	renderItems(a.out, items, a.now())
	return nil
}

func (a *App) Summary(ctx context.Context, args []string) error {
	var asOf timex.Date
	if len(args) > 0 {
		d, err := timex.ParseDate(args[0])
		if err != nil {
			return usage("summary [YYYY-MM-DD]")
		}
		asOf = d
	}

	rep, err := a.client.Summary(ctx, asOf)
	if err != nil {
		return err
	}
	renderReport(a.out, rep)
	return nil
}

// Image uploads a local picture for an item.
func (a *App) Image(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("image <id> <path>")
	}

	data, contentType, err := filex.ReadImage(args[1], maxImageSize)
	if err != nil {
		return err
	}

	item, err := a.client.UploadImage(ctx, args[0], contentType, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Image stored at", item.ImageURL)
	return nil
}
