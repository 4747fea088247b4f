package repositories

import (
	"context"
)

// OutputRepository delivers a rendered report, either by printing it or by persisting it.
type OutputRepository interface {
	// Write delivers content. name is the target file name including its extension;
	// implementations that do not persist ignore it.
	Write(ctx context.Context, name, content string) error
}
