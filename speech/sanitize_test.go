package speech

import "testing"

// TestStripSSML tests markup removal and entity unescaping.
func TestStripSSML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text untouched", "こんにちは", "こんにちは"},
		{"empty string", "", ""},
		{"speak wrapper", "<speak>こんにちは</speak>", "こんにちは"},
		{"self closing tag", "おはよう<break time=\"500ms\"/>ございます", "おはようございます"},
		{"nested tags", "<speak><prosody rate=\"slow\">ゆっくり</prosody></speak>", "ゆっくり"},
		{"attributes with angle-free values", "<voice name=\"mei_normal\">声</voice>", "声"},
		{"entity lt", "1 &lt; 2", "1 < 2"},
		{"entity gt", "2 &gt; 1", "2 > 1"},
		{"entity amp", "A &amp; B", "A & B"},
		{"entity quot and apos", "&quot;はい&quot; と &apos;いいえ&apos;", "\"はい\" と 'いいえ'"},
		{"mixed markup and entities", "<speak>A &amp; B</speak>", "A & B"},
		{"unterminated tag drops remainder", "before <speak", "before "},
		{"bare ampersand preserved", "fish & chips", "fish & chips"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := StripSSML(tt.input); result != tt.expected {
				t.Errorf("StripSSML(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
