package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/asset-portal/internal/db"
	"github.com/ukydev/asset-portal/internal/models"
)

// OdometerReading is the payload published by on-board units and the
// simulator on fleet/<vehicle_id>/odometer.
type OdometerReading struct {
	VehicleID  string  `json:"vehicle_id"`
	Month      string  `json:"month"` // YYYY-MM
	DistanceKm float64 `json:"distance_km"`
}

// Subscriber consumes odometer readings over MQTT and upserts them as
// monthly mileage rows. One reading per vehicle per month wins; later
// readings replace earlier ones.
type Subscriber struct {
	client  mqtt.Client
	topic   string
	mileage db.MileageCollection
}

// NewSubscriber connects to the broker and returns a subscriber ready
// to start consuming.
func NewSubscriber(broker, clientID, topic string, mileage db.MileageCollection) (*Subscriber, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.WithError(err).Warn("mqtt connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to mqtt broker: %w", token.Error())
	}

	return &Subscriber{
		client:  client,
		topic:   topic,
		mileage: mileage,
	}, nil
}

// Start subscribes to the odometer topic. Messages are handled on paho's
// callback goroutine; bad payloads are logged and dropped.
func (s *Subscriber) Start() error {
	token := s.client.Subscribe(s.topic, 1, s.handleMessage)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.topic, token.Error())
	}
	log.WithField("topic", s.topic).Info("subscribed to odometer feed")
	return nil
}

func (s *Subscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var reading OdometerReading
	if err := json.Unmarshal(msg.Payload(), &reading); err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Warn("dropping malformed odometer payload")
		return
	}
	if err := validateReading(reading); err != nil {
		log.WithError(err).WithField("vehicle_id", reading.VehicleID).Warn("dropping invalid odometer reading")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mileage := models.MonthlyMileage{
		VehicleID:  reading.VehicleID,
		Month:      reading.Month,
		DistanceKm: reading.DistanceKm,
	}
	if err := s.mileage.UpsertMileage(ctx, mileage); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"vehicle_id": reading.VehicleID,
			"month":      reading.Month,
		}).Error("failed to upsert mileage")
		return
	}

	log.WithFields(log.Fields{
		"vehicle_id":  reading.VehicleID,
		"month":       reading.Month,
		"distance_km": reading.DistanceKm,
	}).Debug("recorded odometer reading")
}

func validateReading(reading OdometerReading) error {
	if reading.VehicleID == "" {
		return fmt.Errorf("missing vehicle_id")
	}
	if _, err := time.Parse("2006-01", reading.Month); err != nil {
		return fmt.Errorf("invalid month %q", reading.Month)
	}
	if reading.DistanceKm < 0 {
		return fmt.Errorf("negative distance")
	}
	return nil
}

// Stop unsubscribes and disconnects from the broker.
func (s *Subscriber) Stop() {
	if token := s.client.Unsubscribe(s.topic); token.Wait() && token.Error() != nil {
		log.WithError(token.Error()).Warn("failed to unsubscribe")
	}
	s.client.Disconnect(250)
}
