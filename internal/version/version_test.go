package version

import "testing"

func TestBuildNumber(t *testing.T) {
	tests := []struct {
		date    string
		want    int
		wantErr bool
	}{
		{date: "2026-03-01", want: 0},
		{date: "2026-03-02", want: 1},
		{date: "2027-03-01", want: 365},
		{date: "2028-03-01", want: 731}, // 29 февраля 2028
		{date: "01.03.2026", wantErr: true},
		{date: "", wantErr: true},
		{date: "2026-02-28", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := buildNumber(tt.date)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildNumber(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("buildNumber(%q) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestCurrentAndFields(t *testing.T) {
	oldDate, oldCommit := BuildDate, BuildCommit
	defer func() { BuildDate, BuildCommit = oldDate, oldCommit }()

	BuildDate, BuildCommit = "2026-03-11", "abc123"
	if b := Current(); b.ID != 10 || b.Commit != "abc123" {
		t.Errorf("Current() = %+v", b)
	}
	fields := Fields()
	if fields["build"] != 10 || fields["commit"] != "abc123" {
		t.Errorf("Fields() = %v", fields)
	}

	BuildDate, BuildCommit = "", ""
	if b := Current(); b.ID != 0 {
		t.Errorf("local build id = %d", b.ID)
	}
	if Fields()["build"] != "dev" {
		t.Errorf("Fields() = %v", Fields())
	}
}
