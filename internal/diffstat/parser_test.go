package diffstat

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		diff     string
		expected Stats
	}{
		{
			name:     "empty diff",
			diff:     "",
			expected: Stats{},
		},
		{
			name: "single hunk",
			diff: `Index: src/main.go
===================================================================
--- src/main.go	(revision 99)
+++ src/main.go	(revision 100)
@@ -1,3 +1,4 @@
 package main
+import "fmt"
-import "os"
+import "log"
`,
			expected: Stats{LinesAdded: 2, LinesDeleted: 1},
		},
		{
			name: "file headers not counted",
			diff: `--- a/file.txt
+++ b/file.txt
@@ -1 +1 @@
-old
+new
`,
			expected: Stats{LinesAdded: 1, LinesDeleted: 1},
		},
		{
			name: "property-only change",
			diff: `Property changes on: trunk/wp-admin
___________________________________________________________________
Added: svn:ignore
+*.log
+build
`,
			expected: Stats{},
		},
		{
			name: "property section followed by content",
			diff: `Property changes on: trunk
___________________________________________________________________
Modified: svn:externals
+external line that must not count
Index: trunk/readme.txt
===================================================================
--- trunk/readme.txt	(revision 1)
+++ trunk/readme.txt	(revision 2)
@@ -1,2 +1,2 @@
-Old text
+New text
`,
			expected: Stats{LinesAdded: 1, LinesDeleted: 1},
		},
		{
			name: "hunk header resets property section",
			diff: `Property changes on: trunk
___________________________________________________________________
@@ -1 +1 @@
-gone
+here
`,
			expected: Stats{LinesAdded: 1, LinesDeleted: 1},
		},
		{
			name: "multiple files summed",
			diff: `Index: a.go
===================================================================
--- a.go	(revision 1)
+++ a.go	(revision 2)
@@ -1 +1,2 @@
 unchanged
+added in a
Index: b.go
===================================================================
--- b.go	(revision 1)
+++ b.go	(revision 2)
@@ -1,2 +1 @@
 unchanged
-deleted in b
-also deleted
`,
			expected: Stats{LinesAdded: 1, LinesDeleted: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.diff)
			if result != tt.expected {
				t.Errorf("Parse() = %+v, expected %+v", result, tt.expected)
			}
		})
	}
}

func TestStatsTotal(t *testing.T) {
	s := Stats{LinesAdded: 7, LinesDeleted: 3}
	if s.Total() != 10 {
		t.Errorf("Total() = %d, expected 10", s.Total())
	}
}
