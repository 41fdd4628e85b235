package sorter

import (
	"sort"
	"strings"

	"github.com/OrionFLASH/Sort-SPOD-CSV-for-look-Change/internal/pkg/logger"
)

// HeaderSet is one file's header treated as a set of column names.
type HeaderSet map[string]struct{}

func NewHeaderSet(header []string) HeaderSet {
	s := make(HeaderSet, len(header))
	for _, h := range header {
		s[h] = struct{}{}
	}
	return s
}

// ReconcileFields filters the configured sort fields to those present in
// every file's header, preserving configured order. With fewer than two
// readable headers the configured list is returned unchanged and sorting
// proceeds without cross-file consistency guarantees. An empty result means
// no sortable fields; the caller must abort.
func ReconcileFields(fileHeaders map[string]HeaderSet, fields []FieldSpec, log *logger.Logger) []FieldSpec {
	if len(fileHeaders) < 2 {
		log.Warn("not enough readable files to determine common fields", "readable", len(fileHeaders))
		return fields
	}

	var common HeaderSet
	for _, hs := range fileHeaders {
		if common == nil {
			common = make(HeaderSet, len(hs))
			for name := range hs {
				common[name] = struct{}{}
			}
			continue
		}
		for name := range common {
			if _, ok := hs[name]; !ok {
				delete(common, name)
			}
		}
	}

	names := make([]string, 0, len(common))
	for name := range common {
		names = append(names, name)
	}
	sort.Strings(names)
	log.Info("common headers across all files", "headers", strings.Join(names, ", "))

	kept := make([]FieldSpec, 0, len(fields))
	for _, f := range fields {
		if _, ok := common[f.Name]; ok {
			kept = append(kept, f)
			log.Info("field will be used for sorting", "field", f.Name)
		} else {
			log.Warn("field missing from one or more files, skipping", "field", f.Name)
		}
	}

	if len(kept) == 0 {
		log.Error("no common sort fields")
		return kept
	}

	final := make([]string, len(kept))
	for i, f := range kept {
		final[i] = f.Name
	}
	log.Info("final sort fields", "fields", strings.Join(final, ", "))
	return kept
}
