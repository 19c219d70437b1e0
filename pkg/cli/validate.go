package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/knct-dev/knct/pkg/console"
	"github.com/knct-dev/knct/pkg/corpus"
)

// ValidateDataset loads the dataset at path and reports the result. A schema
// violation is rendered with entry and field position before being returned.
func ValidateDataset(path string, verbose bool) error {
	if verbose {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("Validating %s...", console.ToRelativePath(path))))
	}

	entries, err := corpus.LoadDataset(path)
	if err != nil {
		return formatLoadFailure(err)
	}

	fmt.Println(console.FormatSuccessMessage(fmt.Sprintf("%d sentences are loaded and validated successfully.", len(entries))))
	return nil
}

// WatchDataset validates the dataset once, then re-validates on every write
// to the file until interrupted.
func WatchDataset(path string, verbose bool) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve dataset path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return fmt.Errorf("dataset file does not exist: %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the containing directory; editors often replace the file on
	// save, which would drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", filepath.Dir(absPath), err)
	}

	fmt.Printf("Watching for file changes to %s...\n", console.ToRelativePath(absPath))
	if verbose {
		fmt.Println("Press Ctrl+C to stop watching.")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	const debounceDelay = 300 * time.Millisecond
	var debounceTimer *time.Timer

	revalidate := func() {
		if err := ValidateDataset(absPath, verbose); err != nil {
			fmt.Println(console.FormatWarningMessage(fmt.Sprintf("Validation failed: %v", err)))
		}
	}
	revalidate()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher channel closed")
			}
			if event.Name != absPath {
				continue
			}
			if verbose {
				fmt.Printf("Detected change: %s (%s)\n", console.ToRelativePath(event.Name), event.Op.String())
			}
			switch {
			case event.Has(fsnotify.Remove):
				fmt.Println(console.FormatWarningMessage("Dataset file was removed"))
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, revalidate)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			if verbose {
				fmt.Println(console.FormatWarningMessage(fmt.Sprintf("Watcher error: %v", err)))
			}

		case <-sigChan:
			fmt.Println("\nStopping watch mode...")
			return nil
		}
	}
}

// formatLoadFailure renders schema violations with entry/field position;
// other load errors pass through unchanged.
func formatLoadFailure(err error) error {
	var serr *corpus.SchemaError
	if errors.As(err, &serr) {
		formatted := console.FormatDataError(console.DataError{
			File:    serr.Path,
			Entry:   serr.EntryIndex,
			Field:   serr.Field,
			Type:    "error",
			Message: serr.Message,
			Hint:    "Check the dataset against the K-NCT record schema",
		})
		return errors.New(formatted)
	}
	return err
}
