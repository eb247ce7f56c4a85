package tdt

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
)

// Header is the fixed TDT output header line, spec §6.
const Header = " CHR          BP       A1      A2       T       U          OR            CHISQ            P\n"

// WriteHeader writes the fixed-format header line.
func WriteHeader(w io.Writer) error {
	_, err := io.WriteString(w, Header)
	return err
}

// WriteResult writes one result line in the layout spec §6 defines:
// chromosome \t position(12d) \t ref \t alt \t t1 \t t2 \t odds_ratio(%8f) \t chi_square(%6f).
func WriteResult(w io.Writer, r Result) error {
	_, err := fmt.Fprintf(w, "%s\t%12d\t%s\t%s\t%d\t%d\t%8f\t%6f\n",
		r.Chrom, r.Pos, r.Ref, r.Alt, r.T1, r.T2, r.OddsRatio(), r.ChiSquare())
	return err
}

// OutputFile wraps the underlying file handle so its Close can also flush
// and close an optional gzip layer.
type OutputFile struct {
	w      io.Writer
	gz     *gzip.Writer
	under  file.File
	ctx    context.Context
}

func (o *OutputFile) Write(p []byte) (int, error) { return o.w.Write(p) }

// Close flushes any gzip layer and closes the underlying file.
func (o *OutputFile) Close() error {
	var gzErr error
	if o.gz != nil {
		gzErr = o.gz.Close()
	}
	if err := o.under.Close(o.ctx); err != nil {
		return err
	}
	return gzErr
}

// OpenOutput creates dir (if it does not already exist) and opens
// dir+filename for writing, per spec §6's CLI surface. dir must already end
// with a path separator: the source concatenates directory and filename
// with no separator inserted between them, and this is preserved as a
// caller-side precondition rather than silently corrected (Design Notes).
// When filename ends in ".gz", the returned writer transparently
// gzip-compresses everything written to it.
func OpenOutput(ctx context.Context, dir, filename string) (*OutputFile, error) {
	if err := os.MkdirAll(dir, 0755); err != nil && !os.IsExist(err) {
		return nil, errors.E(err, "tdt: could not create output directory:", dir)
	}
	path := dir + filename
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(err, "tdt: could not create output file:", path)
	}
	out := &OutputFile{under: f, ctx: ctx, w: f.Writer(ctx)}
	if strings.HasSuffix(filename, ".gz") {
		out.gz = gzip.NewWriter(out.w)
		out.w = out.gz
	}
	return out, nil
}
