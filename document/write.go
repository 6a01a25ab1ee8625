package document

import (
	"os"

	"github.com/swagfix/swagfix/internal/fileutil"
	"github.com/swagfix/swagfix/swagerrors"
)

// Save serializes the document and writes it to path, overwriting any
// existing content. The document is fully serialized in memory before the
// file is touched, so a marshal failure leaves the target unchanged.
// Returns a [swagerrors.IOError] if the path cannot be written.
func (d *Document) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, fileutil.OwnerReadWrite); err != nil {
		return &swagerrors.IOError{Path: path, Op: "write", Cause: err}
	}
	return nil
}
