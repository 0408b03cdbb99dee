package timezone

import (
	"testing"
)

type fixedFinder string

func (f fixedFinder) GetTimezoneName(lng, lat float64) string { return string(f) }

func TestService_GetTimezone(t *testing.T) {
	svc, err := NewService()
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		want      string
	}{
		{
			name:      "Paris, France",
			latitude:  48.8566,
			longitude: 2.3522,
			want:      "Europe/Paris",
		},
		{
			name:      "New York City",
			latitude:  40.7128,
			longitude: -74.0060,
			want:      "America/New_York",
		},
		{
			name:      "Tokyo, Japan",
			latitude:  35.6762,
			longitude: 139.6503,
			want:      "Asia/Tokyo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetTimezone(tt.latitude, tt.longitude)
			if err != nil {
				t.Errorf("GetTimezone() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("GetTimezone() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestService_GetLocation(t *testing.T) {
	svc := NewServiceWithFinder(fixedFinder("Europe/Paris"))

	loc, err := svc.GetLocation(48.8566, 2.3522)
	if err != nil {
		t.Fatalf("GetLocation() error = %v", err)
	}
	if loc.String() != "Europe/Paris" {
		t.Errorf("GetLocation() = %v, want Europe/Paris", loc)
	}

	again, err := svc.GetLocation(48.8566, 2.3522)
	if err != nil {
		t.Fatalf("GetLocation() second call error = %v", err)
	}
	if again != loc {
		t.Error("GetLocation() did not reuse the loaded zone")
	}
}

func TestService_GetLocation_Errors(t *testing.T) {
	tests := []struct {
		name   string
		finder fixedFinder
	}{
		{name: "no zone for coordinates", finder: ""},
		{name: "unknown zone name", finder: "Mars/Olympus_Mons"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewServiceWithFinder(tt.finder)
			if _, err := svc.GetLocation(0, 0); err == nil {
				t.Error("GetLocation() expected error but got none")
			}
		})
	}
}
