package app

import "testing"

func TestListenAddr(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"8080", ":8080", false},
		{" :9090 ", ":9090", false},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ListenAddr(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("ListenAddr(%q) = %q, %v", tc.in, got, err)
		}
	}
}
