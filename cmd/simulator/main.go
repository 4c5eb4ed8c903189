package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// Vehicle mirrors the portal's vehicle payload. Dates are plain
// YYYY-MM-DD strings, the same shape the API stores.
type Vehicle struct {
	Number          string `json:"number"`
	Name            string `json:"name"`
	OwnershipType   string `json:"ownership_type"`
	Status          string `json:"status"`
	TireType        string `json:"tire_type"`
	InspectionDate  string `json:"inspection_date,omitempty"`
	MaintenanceDate string `json:"maintenance_date,omitempty"`
	InsuranceDate   string `json:"insurance_date,omitempty"`
	TireChangeDate  string `json:"tire_change_date,omitempty"`
	Lease           *Lease `json:"lease,omitempty"`
}

// Lease mirrors the portal's lease contract payload.
type Lease struct {
	MonthlyCost   int64  `json:"monthly_cost"`
	ContractStart string `json:"contract_start"`
	ContractEnd   string `json:"contract_end"`
}

// PC mirrors the portal's PC payload.
type PC struct {
	Name               string `json:"name"`
	Maker              string `json:"maker"`
	Model              string `json:"model"`
	AssignedTo         string `json:"assigned_to,omitempty"`
	OwnershipType      string `json:"ownership_type"`
	Status             string `json:"status"`
	WarrantyExpiration string `json:"warranty_expiration,omitempty"`
	Lease              *Lease `json:"lease,omitempty"`
}

// OdometerReading is the MQTT payload consumed by the portal's ingest.
type OdometerReading struct {
	VehicleID  string  `json:"vehicle_id"`
	Month      string  `json:"month"`
	DistanceKm float64 `json:"distance_km"`
}

var plateRegions = []string{"品川", "多摩", "足立", "練馬", "横浜", "川崎"}

func randomPlate() string {
	return fmt.Sprintf("%s %d00 あ %02d-%02d",
		plateRegions[rand.Intn(len(plateRegions))],
		3+rand.Intn(6),
		1+rand.Intn(98),
		1+rand.Intn(98))
}

// randomDeadline spreads deadlines across the warning bands so a seeded
// fleet produces a realistic mix of critical, warning and clear assets.
func randomDeadline(now time.Time) string {
	return now.AddDate(0, 0, rand.Intn(180)-20).Format("2006-01-02")
}

func randomVehicle(now time.Time, index int) Vehicle {
	v := Vehicle{
		Number:          randomPlate(),
		Name:            fmt.Sprintf("営業車 %d", index+1),
		OwnershipType:   "owned",
		Status:          "active",
		TireType:        []string{"summer", "winter", "all_season"}[rand.Intn(3)],
		InspectionDate:  randomDeadline(now),
		MaintenanceDate: randomDeadline(now),
		InsuranceDate:   randomDeadline(now),
		TireChangeDate:  randomDeadline(now),
	}
	if rand.Intn(2) == 0 {
		v.OwnershipType = "leased"
		v.Lease = &Lease{
			MonthlyCost:   int64(30000 + rand.Intn(40)*1000),
			ContractStart: now.AddDate(-1, 0, 0).Format("2006-01-02"),
			ContractEnd:   now.AddDate(0, 0, rand.Intn(365)).Format("2006-01-02"),
		}
	}
	return v
}

var pcMakers = []struct {
	maker  string
	models []string
}{
	{"Lenovo", []string{"ThinkPad X1 Carbon", "ThinkPad T14"}},
	{"Dell", []string{"Latitude 5440", "XPS 13"}},
	{"Panasonic", []string{"Let's note CF-SR", "Let's note CF-FV"}},
}

var pcDepartments = []string{"総務部", "経理部", "営業部", "人事部"}

// randomPC produces a leased laptop so seeded data always exercises the
// lease cost aggregation for PCs, not just vehicles.
func randomPC(now time.Time, index int) PC {
	entry := pcMakers[rand.Intn(len(pcMakers))]
	return PC{
		Name:               fmt.Sprintf("PC-%03d", index+1),
		Maker:              entry.maker,
		Model:              entry.models[rand.Intn(len(entry.models))],
		AssignedTo:         pcDepartments[rand.Intn(len(pcDepartments))],
		OwnershipType:      "leased",
		Status:             "active",
		WarrantyExpiration: randomDeadline(now),
		Lease: &Lease{
			MonthlyCost:   int64(4000 + rand.Intn(8)*500),
			ContractStart: now.AddDate(-2, 0, 0).Format("2006-01-02"),
			ContractEnd:   now.AddDate(0, rand.Intn(24), 0).Format("2006-01-02"),
		},
	}
}

var authToken string

func authorizedPost(url string, body *bytes.Buffer) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func createVehicle(apiURL string, vehicle Vehicle) (string, error) {
	data, err := json.Marshal(vehicle)
	if err != nil {
		return "", fmt.Errorf("failed to marshal vehicle: %w", err)
	}

	resp, err := authorizedPost(apiURL+"/vehicles", bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create vehicle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("vehicle creation failed with status: %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	createdID, ok := result["id"].(string)
	if !ok {
		return "", fmt.Errorf("invalid vehicle ID in response")
	}

	log.WithFields(log.Fields{
		"vehicle_id": createdID,
		"number":     vehicle.Number,
		"ownership":  vehicle.OwnershipType,
	}).Info("Created vehicle")

	return createdID, nil
}

func createPC(apiURL string, pc PC) (string, error) {
	data, err := json.Marshal(pc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal pc: %w", err)
	}

	resp, err := authorizedPost(apiURL+"/pcs", bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create pc: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("pc creation failed with status: %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	createdID, ok := result["id"].(string)
	if !ok {
		return "", fmt.Errorf("invalid pc ID in response")
	}

	log.WithFields(log.Fields{
		"pc_id": createdID,
		"name":  pc.Name,
		"model": pc.Model,
	}).Info("Created PC")

	return createdID, nil
}

// monthlyDistance draws a plausible monthly figure for a commercial
// vehicle, in kilometers.
func monthlyDistance() float64 {
	return 800 + rand.Float64()*1200
}

func publishReading(client mqtt.Client, reading OdometerReading) error {
	data, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}
	topic := fmt.Sprintf("fleet/%s/odometer", reading.VehicleID)
	token := client.Publish(topic, 1, false, data)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, token.Error())
	}
	return nil
}

func simulateOdometer(client mqtt.Client, vehicleID string, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for range tick.C {
		reading := OdometerReading{
			VehicleID:  vehicleID,
			Month:      time.Now().Format("2006-01"),
			DistanceKm: monthlyDistance(),
		}
		if err := publishReading(client, reading); err != nil {
			log.WithError(err).WithField("vehicle_id", vehicleID).Error("Failed to publish reading")
			continue
		}
		log.WithFields(log.Fields{
			"vehicle_id":  vehicleID,
			"month":       reading.Month,
			"distance_km": reading.DistanceKm,
		}).Info("Published odometer reading")
	}
}

func main() {
	authToken = os.Getenv("SIM_AUTH_TOKEN")

	fleetSize := 10
	if val := os.Getenv("FLEET_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			fleetSize = n
		}
	}

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		broker = "tcp://localhost:1883"
	}

	interval := 30 * time.Second
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			interval = time.Duration(n) * time.Second
		}
	}

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"api_url":    apiURL,
		"broker":     broker,
		"interval":   interval,
	}).Info("Starting fleet seed simulation")

	now := time.Now()
	vehicleIDs := make([]string, 0, fleetSize)
	for i := 0; i < fleetSize; i++ {
		id, err := createVehicle(apiURL, randomVehicle(now, i))
		if err != nil {
			log.WithError(err).Error("Failed to create vehicle")
			continue
		}
		vehicleIDs = append(vehicleIDs, id)
	}

	pcCount := fleetSize / 2
	if val := os.Getenv("PC_COUNT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			pcCount = n
		}
	}
	createdPCs := 0
	for i := 0; i < pcCount; i++ {
		if _, err := createPC(apiURL, randomPC(now, i)); err != nil {
			log.WithError(err).Error("Failed to create PC")
			continue
		}
		createdPCs++
	}

	log.WithFields(log.Fields{
		"created_vehicles": len(vehicleIDs),
		"created_pcs":      createdPCs,
	}).Info("Fleet seeding completed")
	if len(vehicleIDs) == 0 {
		log.Error("No vehicles created. Ensure SIM_AUTH_TOKEN is valid and API is reachable. Exiting.")
		os.Exit(1)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("asset-portal-simulator").
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.WithError(token.Error()).Fatal("Failed to connect to MQTT broker")
	}
	defer client.Disconnect(250)

	for _, id := range vehicleIDs {
		go simulateOdometer(client, id, interval)
	}

	log.Info("Odometer simulation started")
	select {}
}
