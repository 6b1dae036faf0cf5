package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/vdrcandles/catalog/internal/catalog"
	"github.com/vdrcandles/catalog/internal/domain"
)

func (sh *Shell) addProduct(ctx context.Context) error {
	fmt.Fprintln(sh.out)
	fmt.Fprintln(sh.out, "--- Add New Product ---")

	var (
		np  domain.NewProduct
		err error
	)
	if np.Name, err = sh.promptText(ctx, "Product name: ", ""); err != nil {
		return err
	}
	if np.Price, err = sh.promptInt(ctx, fmt.Sprintf("Price (%s): ", sh.store.CurrencySymbol())); err != nil {
		return errors.Wrap(err, "price")
	}
	if np.Category, err = sh.promptText(ctx, "Category: ", ""); err != nil {
		return err
	}
	if np.Description, err = sh.promptText(ctx, "Description: ", ""); err != nil {
		return err
	}
	if np.BurnTime, err = sh.promptText(ctx, fmt.Sprintf("Burn time (default: %s): ", domain.DefaultBurnTime), domain.DefaultBurnTime); err != nil {
		return err
	}
	if np.WaxType, err = sh.promptText(ctx, fmt.Sprintf("Wax type (default: %s): ", domain.DefaultWaxType), domain.DefaultWaxType); err != nil {
		return err
	}
	if np.Size, err = sh.promptText(ctx, fmt.Sprintf("Size (default: %s): ", domain.DefaultSize), domain.DefaultSize); err != nil {
		return err
	}

	_, err = sh.store.Add(np)
	return err
}

func (sh *Shell) updateProduct(ctx context.Context) error {
	sh.store.List(sh.out)
	id, err := sh.promptInt(ctx, "Enter product ID to update: ")
	if err != nil {
		return errors.Wrap(err, "product id")
	}
	field, err := sh.promptText(ctx, "Field to update (name/price/description/in_stock): ", "")
	if err != nil {
		return err
	}
	field = strings.ToLower(field)
	raw, err := sh.promptText(ctx, fmt.Sprintf("New %s value: ", field), "")
	if err != nil {
		return err
	}

	value, err := coerceField(field, raw)
	if err != nil {
		return err
	}
	_, err = sh.store.Update(id, map[string]interface{}{field: value})
	if errors.Is(err, catalog.ErrProductNotFound) || errors.Is(err, catalog.ErrUnknownField) {
		return nil
	}
	return err
}

// coerceField converts the typed text for field into the value the store
// expects.
func coerceField(field, raw string) (interface{}, error) {
	switch field {
	case "in_stock":
		return catalog.ParseAffirmative(raw), nil
	case "price", "original_price":
		n, err := catalog.ParseInt(raw)
		if err != nil {
			return nil, errors.Wrap(err, field)
		}
		return n, nil
	default:
		return raw, nil
	}
}

func (sh *Shell) deleteProduct(ctx context.Context) error {
	sh.store.List(sh.out)
	id, err := sh.promptInt(ctx, "Enter product ID to delete: ")
	if err != nil {
		return errors.Wrap(err, "product id")
	}
	confirm, err := sh.promptText(ctx, fmt.Sprintf("Delete product #%d? (yes/no): ", id), "")
	if err != nil {
		return err
	}
	if strings.ToLower(confirm) != "yes" {
		return nil
	}
	if err := sh.store.Delete(id); err != nil && !errors.Is(err, catalog.ErrProductNotFound) {
		return err
	}
	return nil
}

func (sh *Shell) searchByName(ctx context.Context) error {
	name, err := sh.promptText(ctx, "Search for product name: ", "")
	if err != nil {
		return err
	}
	results := sh.store.FindByName(name)
	if len(results) == 0 {
		fmt.Fprintf(sh.out, "No products found matching '%s'\n", name)
		return nil
	}
	fmt.Fprintf(sh.out, "\nFound %d product(s):\n", len(results))
	catalog.RenderMatches(sh.out, results, sh.store.CurrencySymbol())
	return nil
}

func (sh *Shell) filterByCategory(ctx context.Context) error {
	sh.store.List(sh.out)
	category, err := sh.promptText(ctx, "Filter by category: ", "")
	if err != nil {
		return err
	}
	results := sh.store.FindByCategory(category)
	if len(results) == 0 {
		fmt.Fprintf(sh.out, "No products in category '%s'\n", category)
		return nil
	}
	fmt.Fprintf(sh.out, "\n%s Products (%d):\n", category, len(results))
	catalog.RenderMatches(sh.out, results, sh.store.CurrencySymbol())
	return nil
}

func (sh *Shell) showStats() error {
	st, err := sh.store.Stats()
	if errors.Is(err, catalog.ErrEmptyCatalog) {
		return nil
	}
	if err != nil {
		return err
	}
	catalog.RenderStats(sh.out, st, sh.store.CurrencySymbol())
	return nil
}

func (sh *Shell) exportFile(ctx context.Context) error {
	filename, err := sh.promptText(ctx, fmt.Sprintf("Export filename (default: %s): ", defaultExportFile), defaultExportFile)
	if err != nil {
		return err
	}
	_, err = sh.store.ExportCSV(filename)
	return err
}

func (sh *Shell) importFile(ctx context.Context) error {
	filename, err := sh.promptText(ctx, "Import filename: ", "")
	if err != nil {
		return err
	}
	_, err = sh.store.ImportCSV(filename)
	return err
}
