package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"codeberg.org/n30w/ante/pkg/memory"
)

type retriever interface {
	Retrieve(ctx context.Context, n int) ([]memory.TranslationRecord, error)
}

// showRecent prints the n most recently archived translations as JSON lines.
func showRecent(ctx context.Context, conf userConfig, n int, out io.Writer) error {
	if conf.Database == "" {
		return errors.New("listing archived translations requires a database URL")
	}

	db, err := memory.NewDatabaseStore(ctx, conf.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	return writeRecent(ctx, db, n, out)
}

func writeRecent(ctx context.Context, r retriever, n int, out io.Writer) error {
	records, err := r.Retrieve(ctx, n)
	if err != nil {
		return errors.Wrap(err, "failed to list archived translations")
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	for _, record := range records {
		err = enc.Encode(record)
		if err != nil {
			return errors.Wrap(err, "failed to write archived translation")
		}
	}

	return nil
}
