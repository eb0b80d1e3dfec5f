// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LibraryKVTable represents the SQLite 'library_kv' table of the library store
type LibraryKVTable struct {
	Table     string
	Profile   string
	Key       string
	Value     string
	UpdatedAt string
}

// LibraryKV is the schema definition for library_kv
var LibraryKV = LibraryKVTable{
	Table:     "library_kv",
	Profile:   "profile",
	Key:       "entrykey",
	Value:     "value",
	UpdatedAt: "updatedat",
}
