package middleware

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// Devices subscribe to lumen/devices/<id>/refresh; a message there tells the
// display to re-poll its resolution immediately instead of waiting for the
// next heartbeat. Publishing is best-effort: a down broker only delays the
// refresh until the next poll.

var (
	mqttClient mqtt.Client
	brokerURL  = "tcp://0.0.0.0:1883"
)

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// SetBrokerURL allows configuration of the MQTT broker URL.
func SetBrokerURL(url string) {
	brokerURL = url
}

// CreateMQTTClient connects the shared notifier client.
func CreateMQTTClient(clientName string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	mqttClient = mqtt.NewClient(opts)
	if token := mqttClient.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}

	log.Info().Str("broker", brokerURL).Msg("MQTT client initialized")
	return mqttClient, nil
}

func deviceRefreshTopic(deviceID int) string {
	return fmt.Sprintf("lumen/devices/%d/refresh", deviceID)
}

// NotifyDeviceRefresh nudges one device after its assignments changed.
func NotifyDeviceRefresh(deviceID int) {
	if mqttClient == nil || !mqttClient.IsConnected() {
		return
	}
	token := mqttClient.Publish(deviceRefreshTopic(deviceID), 0, false, "refresh")
	go func() {
		if token.Wait() && token.Error() != nil {
			log.Warn().Err(token.Error()).Int("device_id", deviceID).Msg("device refresh publish failed")
		}
	}()
}

// NotifyAllDevices broadcasts after a campaign mutation, since which devices
// it affects depends on targeting that may itself have changed.
func NotifyAllDevices() {
	if mqttClient == nil || !mqttClient.IsConnected() {
		return
	}
	token := mqttClient.Publish("lumen/devices/all/refresh", 0, false, "refresh")
	go func() {
		if token.Wait() && token.Error() != nil {
			log.Warn().Err(token.Error()).Msg("broadcast refresh publish failed")
		}
	}()
}
