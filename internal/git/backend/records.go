package backend

import (
	"errors"
	"fmt"
	"strings"
)

var ErrDecode = errors.New("decode ref listing")

const (
	// recordSentinel ends every for-each-ref record. %(body) may contain newlines,
	// so records cannot be split on line boundaries. The format assumes the unit
	// separator never appears in ref names or commit messages.
	recordSentinel = "\x1f"
	// fieldTerminator ends every field, including the last one.
	fieldTerminator = "\x00"

	refFieldCount = 8
)

var refFields = []string{
	"%(refname)",
	"%(refname:short)",
	"%(upstream:short)",
	"%(objectname)",
	"%(author)",
	"%(parent)",
	"%(subject)",
	"%(body)",
}

// refListingFormat is passed to for-each-ref --format. git expands %00 and %1f
// into the raw bytes.
var refListingFormat = strings.Join(refFields, "%00") + "%00%1f"

type refRecord struct {
	Ref       string
	ShortName string
	Upstream  string
	Hash      string
	Author    string
	Parents   string
	Subject   string
	Body      string
}

func decodeRefRecords(out string) ([]refRecord, error) {
	chunks := strings.Split(out, recordSentinel)
	// for-each-ref prints a newline after each record, so the last chunk is always
	// what follows the final sentinel.
	chunks = chunks[:len(chunks)-1]

	records := make([]refRecord, 0, len(chunks))
	for i, chunk := range chunks {
		if i > 0 {
			// The newline that followed the previous sentinel.
			if chunk == "" {
				return nil, fmt.Errorf("%w: record %d is empty", ErrDecode, i)
			}
			chunk = chunk[1:]
		}
		rec, err := decodeRefRecord(chunk)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrDecode, i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRefRecord(chunk string) (refRecord, error) {
	// Every field is terminated, so a complete record splits into the fields plus
	// one empty piece after the last terminator.
	fields := strings.Split(chunk, fieldTerminator)
	if len(fields) != refFieldCount+1 || fields[refFieldCount] != "" {
		return refRecord{}, fmt.Errorf("got %d pieces, want %d terminated fields", len(fields), refFieldCount)
	}
	return refRecord{
		Ref:       fields[0],
		ShortName: fields[1],
		Upstream:  fields[2],
		Hash:      fields[3],
		Author:    fields[4],
		Parents:   fields[5],
		Subject:   fields[6],
		Body:      fields[7],
	}, nil
}
