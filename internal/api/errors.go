package api

import "errors"

// Sentinel errors classifying every way a call to the backend can fail.
// Callers match with errors.Is and show a human-readable message; raw
// transport errors never reach the view.
var (
	ErrAuth   = errors.New("authentication failed")
	ErrFetch  = errors.New("fetch failed")
	ErrSave   = errors.New("save failed")
	ErrDelete = errors.New("delete failed")
)

// Humanize maps an API error to the inline message the UI shows.
func Humanize(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuth):
		return "Wrong password."
	case errors.Is(err, ErrFetch):
		return "Could not load data."
	case errors.Is(err, ErrSave):
		return "Could not save the clip."
	case errors.Is(err, ErrDelete):
		return "Could not delete the clip."
	default:
		return "Unknown error."
	}
}
