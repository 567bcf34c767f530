package sensor

import (
	"encoding/json"
	"fmt"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// Connect opens the shared broker connection used by every device source.
func Connect(brokerURL, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Info().Str("broker", brokerURL).Str("client_id", clientID).Msg("MQTT client initialized")
	return client, nil
}

// OrientationTopic is where a device publishes its orientation events.
func OrientationTopic(deviceID string) string {
	return fmt.Sprintf("devices/%s/orientation", deviceID)
}

// MQTTSource streams one device's orientation topic.
type MQTTSource struct {
	client   mqtt.Client
	deviceID string
}

func NewMQTTSource(client mqtt.Client, deviceID string) *MQTTSource {
	return &MQTTSource{client: client, deviceID: deviceID}
}

func (s *MQTTSource) Subscribe(h Handler) (Unsubscribe, error) {
	if s.client == nil || !s.client.IsConnectionOpen() {
		return nil, ErrUnsupported
	}

	topic := OrientationTopic(s.deviceID)
	token := s.client.Subscribe(topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		raw, err := decodeOrientation(msg.Payload())
		if err != nil {
			log.Debug().Err(err).Str("topic", msg.Topic()).Msg("dropping malformed orientation payload")
			return
		}
		h(raw)
	})
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("subscribe %s: %w", topic, token.Error())
	}
	log.Info().Str("deviceID", s.deviceID).Str("topic", topic).Msg("subscribed to orientation stream")

	var once sync.Once
	return func() {
		once.Do(func() {
			if t := s.client.Unsubscribe(topic); t.Wait() && t.Error() != nil {
				log.Error().Err(t.Error()).Str("topic", topic).Msg("failed to unsubscribe")
			}
		})
	}, nil
}

func decodeOrientation(payload []byte) (model.RawOrientation, error) {
	var raw model.RawOrientation
	if err := json.Unmarshal(payload, &raw); err != nil {
		return model.RawOrientation{}, err
	}
	return raw, nil
}
