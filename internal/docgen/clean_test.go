package docgen

import "testing"

func TestCleanComment(t *testing.T) {
	tests := []struct {
		name   string
		indent string
		text   string
		want   string
	}{
		{
			name:   "marked lines",
			indent: "    ",
			text:   "/// Creates a buffer.\n///\n/// # Example\n",
			want:   "    /// Creates a buffer.\n    ///\n    /// # Example\n",
		},
		{
			name: "markers on one line",
			text: "/// first /// second",
			want: "/// first\n/// second\n",
		},
		{
			name: "leading and trailing blanks",
			text: "\n\n///   \n/// Body.   \n\n",
			want: "/// Body.\n",
		},
		{
			name: "no markers",
			text: "Adds one.\nReturns the sum.",
			want: "/// Adds one.\n/// Returns the sum.\n",
		},
		{
			name: "windows newlines",
			text: "/// a\r\n/// b\r\n",
			want: "/// a\n/// b\n",
		},
		{
			name: "code block kept",
			text: "/// ```\n/// let b = Binary::new(4);\n/// ```",
			want: "/// ```\n/// let b = Binary::new(4);\n/// ```\n",
		},
		{name: "empty", text: "", want: ""},
		{name: "only markers", text: "/// ///\n///", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanComment(tt.indent, tt.text); got != tt.want {
				t.Errorf("CleanComment() = %q, want %q", got, tt.want)
			}
		})
	}
}
