package mqtt

import (
	"testing"
)

func TestValidTopic(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  bool
	}{{
		name:  "Plain name",
		topic: "a/b/c",
		want:  true,
	}, {
		name:  "Empty",
		topic: "",
		want:  false,
	}, {
		name:  "Embedded NUL",
		topic: "a/\x00/c",
		want:  false,
	}, {
		name:  "Wildcards are legal in filters",
		topic: "a/+/#",
		want:  true,
	},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidTopic(tt.topic); got != tt.want {
				t.Errorf("ValidTopic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  bool
	}{{
		name:  "Plain name",
		topic: "a/b/c",
		want:  true,
	}, {
		name:  "Plus wildcard",
		topic: "a/+/c",
		want:  false,
	}, {
		name:  "Hash wildcard",
		topic: "a/b/#",
		want:  false,
	}, {
		name:  "Empty",
		topic: "",
		want:  false,
	},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidName(tt.topic); got != tt.want {
				t.Errorf("ValidName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   bool
	}{{
		name:   "Plain filter",
		filter: "a/b/c",
		want:   true,
	}, {
		name:   "Plus segment",
		filter: "a/+/c",
		want:   true,
	}, {
		name:   "Trailing hash",
		filter: "a/b/#",
		want:   true,
	}, {
		name:   "Lone hash",
		filter: "#",
		want:   true,
	}, {
		name:   "Hash not last",
		filter: "a/#/c",
		want:   false,
	}, {
		name:   "Hash inside segment",
		filter: "a/b#",
		want:   false,
	}, {
		name:   "Plus inside segment",
		filter: "a/b+/c",
		want:   false,
	}, {
		name:   "Empty",
		filter: "",
		want:   false,
	},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidFilter(tt.filter); got != tt.want {
				t.Errorf("ValidFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		topic  string
		want   bool
	}{{
		name:   "Exact",
		filter: "a/b/c",
		topic:  "a/b/c",
		want:   true,
	}, {
		name:   "Plus matches one segment",
		filter: "a/+/c",
		topic:  "a/b/c",
		want:   true,
	}, {
		name:   "Plus does not span segments",
		filter: "a/+/c",
		topic:  "a/b/x/c",
		want:   false,
	}, {
		name:   "Hash matches rest",
		filter: "a/#",
		topic:  "a/b/c",
		want:   true,
	}, {
		name:   "Hash matches parent",
		filter: "a/#",
		topic:  "a",
		want:   true,
	}, {
		name:   "Lone hash matches all",
		filter: "#",
		topic:  "a/b/c",
		want:   true,
	}, {
		name:   "Hash does not match dollar",
		filter: "#",
		topic:  "$SYS/broker",
		want:   false,
	}, {
		name:   "Dollar filter matches dollar",
		filter: "$SYS/#",
		topic:  "$SYS/broker",
		want:   true,
	}, {
		name:   "Empty plus segment",
		filter: "a/+/c",
		topic:  "a//c",
		want:   true,
	},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.filter, tt.topic); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
