package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestRandomPlate(t *testing.T) {
	plate := randomPlate()

	if plate == "" {
		t.Fatal("Expected non-empty plate")
	}
	parts := strings.Split(plate, " ")
	if len(parts) != 4 {
		t.Errorf("Expected 4 plate segments, got %d: %s", len(parts), plate)
	}
}

func TestRandomDeadline_Range(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		deadline := randomDeadline(now)
		parsed, err := time.Parse("2006-01-02", deadline)
		if err != nil {
			t.Fatalf("Deadline not parseable: %s", deadline)
		}
		days := int(parsed.Sub(now).Hours() / 24)
		if days < -20 || days > 160 {
			t.Errorf("Deadline out of expected range: %d days", days)
		}
	}
}

func TestRandomVehicle_LeaseConsistency(t *testing.T) {
	now := time.Now()

	for i := 0; i < 50; i++ {
		v := randomVehicle(now, i)
		if v.OwnershipType == "leased" && v.Lease == nil {
			t.Error("Leased vehicle missing lease contract")
		}
		if v.OwnershipType == "owned" && v.Lease != nil {
			t.Error("Owned vehicle should not carry a lease contract")
		}
		if v.Number == "" {
			t.Error("Vehicle missing registration number")
		}
	}
}

func TestRandomPC_AlwaysLeased(t *testing.T) {
	now := time.Now()

	for i := 0; i < 50; i++ {
		pc := randomPC(now, i)
		if pc.OwnershipType != "leased" {
			t.Errorf("Expected leased PC, got %s", pc.OwnershipType)
		}
		if pc.Lease == nil {
			t.Fatal("Leased PC missing lease contract")
		}
		if pc.Lease.MonthlyCost <= 0 {
			t.Errorf("Expected positive monthly cost, got %d", pc.Lease.MonthlyCost)
		}
		start, err := time.Parse("2006-01-02", pc.Lease.ContractStart)
		if err != nil {
			t.Fatalf("Contract start not parseable: %s", pc.Lease.ContractStart)
		}
		end, err := time.Parse("2006-01-02", pc.Lease.ContractEnd)
		if err != nil {
			t.Fatalf("Contract end not parseable: %s", pc.Lease.ContractEnd)
		}
		if start.After(end) {
			t.Error("Contract start after contract end")
		}
		if pc.Maker == "" || pc.Model == "" {
			t.Error("PC missing maker or model")
		}
	}
}

func TestCreatePC_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pcs" {
			t.Errorf("Expected /pcs path, got %s", r.URL.Path)
		}
		var pc PC
		if err := json.NewDecoder(r.Body).Decode(&pc); err != nil {
			t.Errorf("Failed to decode pc payload: %v", err)
		}
		if pc.Lease == nil {
			t.Error("Expected lease contract in seeded PC payload")
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "PC created", "id": "pc123"})
	}))
	defer server.Close()

	id, err := createPC(server.URL, randomPC(time.Now(), 0))
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if id != "pc123" {
		t.Errorf("Expected id pc123, got %s", id)
	}
}

func TestCreateVehicle_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/vehicles" {
			t.Errorf("Expected /vehicles path, got %s", r.URL.Path)
		}
		var v Vehicle
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			t.Errorf("Failed to decode vehicle payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "Vehicle created", "id": "abc123"})
	}))
	defer server.Close()

	id, err := createVehicle(server.URL, randomVehicle(time.Now(), 0))
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if id != "abc123" {
		t.Errorf("Expected id abc123, got %s", id)
	}
}

func TestCreateVehicle_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := createVehicle(server.URL, randomVehicle(time.Now(), 0)); err == nil {
		t.Error("Expected error on server failure")
	}
}

func TestCreateVehicle_AuthHeader(t *testing.T) {
	authToken = "test-token"
	defer func() { authToken = "" }()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Expected bearer token, got %s", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "abc123"})
	}))
	defer server.Close()

	if _, err := createVehicle(server.URL, randomVehicle(time.Now(), 0)); err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
}

func TestMonthlyDistance_Range(t *testing.T) {
	for i := 0; i < 100; i++ {
		km := monthlyDistance()
		if km < 800 || km > 2000 {
			t.Errorf("Distance out of range: %f", km)
		}
	}
}

func TestMainLogic_FleetSize(t *testing.T) {
	testCases := []struct {
		envValue string
		expected int
	}{
		{"", 10},
		{"5", 5},
		{"invalid", 10},
		{"0", 0},
	}

	for _, tc := range testCases {
		if tc.envValue != "" {
			os.Setenv("FLEET_SIZE", tc.envValue)
		} else {
			os.Unsetenv("FLEET_SIZE")
		}

		fleetSize := 10
		if val := os.Getenv("FLEET_SIZE"); val != "" {
			if n, err := strconv.Atoi(val); err == nil {
				fleetSize = n
			}
		}

		if fleetSize != tc.expected {
			t.Errorf("For env value '%s', expected fleet size %d, got %d", tc.envValue, tc.expected, fleetSize)
		}
	}
	os.Unsetenv("FLEET_SIZE")
}

func TestOdometerReadingJSON(t *testing.T) {
	reading := OdometerReading{
		VehicleID:  "abc123",
		Month:      "2024-06",
		DistanceKm: 1520.5,
	}

	data, err := json.Marshal(reading)
	if err != nil {
		t.Fatalf("Failed to marshal reading: %v", err)
	}
	if !strings.Contains(string(data), `"vehicle_id":"abc123"`) {
		t.Errorf("Unexpected payload: %s", data)
	}
	if !strings.Contains(string(data), `"month":"2024-06"`) {
		t.Errorf("Unexpected payload: %s", data)
	}
}
