// Package objutil holds small helpers for the loosely typed maps that carry
// page data and block options: merging, defaults, entity encoding, list
// parsing and page ids.
package objutil
