package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recordkeeper/internal/client/api"
)

func (a *App) printRecord(r *api.Record) {
	fmt.Fprintf(a.out, "#%d  %s  <%s>  age %d  (updated %s)\n",
		r.ID, r.Name, r.Email, r.Age, r.UpdatedAt.Format("2006-01-02 15:04:05"))
}

// Add creates a record from prompted fields.
func (a *App) Add(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	age, err := GetInt(a.reader, "Age", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	rec, err := a.client.CreateRecord(ctx, name, email, age)
	if err != nil {
		fmt.Fprintln(a.out, "Create failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Created:")
	a.printRecord(rec)
	return nil
}

// List prints all records of the logged-in account in creation order.
func (a *App) List(ctx context.Context) error {
	recs, err := a.client.ListRecords(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "List failed:", err)
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No records yet.")
		return nil
	}
	for i := range recs {
		a.printRecord(&recs[i])
	}
	return nil
}

// Show prints one record by id.
func (a *App) Show(ctx context.Context) error {
	id, err := GetInt(a.reader, "Record id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	rec, err := a.client.GetRecord(ctx, int64(id))
	if err != nil {
		fmt.Fprintln(a.out, "Show failed:", err)
		return err
	}
	a.printRecord(rec)
	return nil
}

// Update patches a record; blank answers keep the stored values.
func (a *App) Update(ctx context.Context) error {
	id, err := GetInt(a.reader, "Record id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	name, err := GetOptionalText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	email, err := GetOptionalText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	age, err := GetOptionalInt(a.reader, "Age", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	rec, err := a.client.UpdateRecord(ctx, int64(id), api.RecordPatch{Name: name, Email: email, Age: age})
	if err != nil {
		fmt.Fprintln(a.out, "Update failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Updated:")
	a.printRecord(rec)
	return nil
}

// Delete removes a record by id.
func (a *App) Delete(ctx context.Context) error {
	id, err := GetInt(a.reader, "Record id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	rec, err := a.client.DeleteRecord(ctx, int64(id))
	if err != nil {
		fmt.Fprintln(a.out, "Delete failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Deleted:")
	a.printRecord(rec)
	return nil
}

// Search lists records whose name contains the given text, ignoring case.
func (a *App) Search(ctx context.Context) error {
	needle, err := GetSimpleText(a.reader, "Name contains", a.out)
	if err != nil {
		return err
	}

	recs, err := a.client.SearchRecords(ctx, needle)
	if err != nil {
		fmt.Fprintln(a.out, "Search failed:", err)
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No matches.")
		return nil
	}
	for i := range recs {
		a.printRecord(&recs[i])
	}
	return nil
}

// Stats prints the record count and average age.
func (a *App) Stats(ctx context.Context) error {
	stats, err := a.client.Stats(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Stats failed:", err)
		return err
	}

	fmt.Fprintf(a.out, "Records: %d, average age: %.1f\n", stats.Count, stats.AverageAge)
	return nil
}
