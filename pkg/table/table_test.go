package table

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/spf13/afero"
)

func TestParse(t *testing.T) {
	is := is.New(t)

	tbl, err := Parse(strings.NewReader("spk1 utt1  utt2\n\n\tspk2\tutt3\n"), "spk2utt")
	is.NoErr(err)

	is.Equal(tbl.Source, "spk2utt")
	is.Equal(tbl.Len(), 3)                                        // blank line kept as an empty row
	is.Equal(tbl.Rows[0].Fields, []string{"spk1", "utt1", "utt2"}) // runs of whitespace collapse
	is.Equal(len(tbl.Rows[1].Fields), 0)
	is.Equal(tbl.Rows[2].Fields, []string{"spk2", "utt3"})
	is.Equal(tbl.Rows[2].Line, 3)
	is.Equal(tbl.Rows[2].Key(), "spk2")
}

func TestWriteUsesLineFeedOnly(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	err := Write(&buf, New("x", []string{"a", "b"}, []string{"c"}))
	is.NoErr(err)
	is.Equal(buf.String(), "a b\nc\n")
	is.True(!strings.Contains(buf.String(), "\r"))
}

func TestStoreLoadNotFound(t *testing.T) {
	is := is.New(t)
	store := &Store{Fs: afero.NewMemMapFs()}

	_, err := store.Load("missing.txt")
	is.True(errors.Is(err, ErrNotFound))

	var terr *Error
	is.True(errors.As(err, &terr))
	is.Equal(terr.Source, "missing.txt")
}

func TestStoreLoadStdin(t *testing.T) {
	is := is.New(t)
	store := &Store{Fs: afero.NewMemMapFs(), Stdin: strings.NewReader("a 1\n")}

	tbl, err := store.Load(StdioPath)
	is.NoErr(err)
	is.Equal(tbl.Lines(), []string{"a 1"})
}

func TestStoreWriteFileRoundTrip(t *testing.T) {
	is := is.New(t)
	fs := afero.NewMemMapFs()
	store := &Store{Fs: fs}
	is.NoErr(fs.MkdirAll("data", 0o755))

	want := New("in", []string{"utt1", "spk1"}, []string{"utt2", "spk1"})
	is.NoErr(store.WriteFile("data/utt2spk", want))
	is.True(store.Exists("data/utt2spk"))

	got, err := store.Load("data/utt2spk")
	is.NoErr(err)
	is.Equal(got.Fields(), want.Fields())

	// only the final file remains, no temp leftovers
	entries, err := afero.ReadDir(fs, "data")
	is.NoErr(err)
	is.Equal(len(entries), 1)
}

func TestStoreWriteFileStdout(t *testing.T) {
	is := is.New(t)
	var out bytes.Buffer
	store := &Store{Fs: afero.NewMemMapFs(), Stdout: &out}

	is.NoErr(store.WriteFile(StdioPath, New("x", []string{"a", "b"})))
	is.Equal(out.String(), "a b\n")
}

func TestStoreWriteFileReadOnly(t *testing.T) {
	is := is.New(t)
	store := &Store{Fs: afero.NewReadOnlyFs(afero.NewMemMapFs())}

	err := store.WriteFile("out.txt", New("x", []string{"a"}))
	is.True(errors.Is(err, ErrIO))
	is.True(!store.Exists("out.txt"))
}

func TestErrorMessage(t *testing.T) {
	is := is.New(t)

	err := &Error{Kind: ErrUnknownCode, Source: "in.txt", Line: 4, Field: 2, Token: "17"}
	is.Equal(err.Error(), `in.txt:4: unknown code (field 2) "17"`)
	is.True(errors.Is(err, ErrUnknownCode))
	is.True(!errors.Is(err, ErrNotAnInteger))

	cause := errors.New("disk full")
	wrapped := &Error{Kind: ErrIO, Source: "out", Msg: "write failed", Err: cause}
	is.True(errors.Is(wrapped, cause))
	is.Equal(len(wrapped.LogAttrs()), 3) // kind, source, cause
}
