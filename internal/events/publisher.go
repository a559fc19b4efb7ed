package events

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

const ApplicationSubmittedQueue = "jobs.application.submitted"

// ApplicationSubmitted is published when a student applies to a job. Carries
// everything the notification worker needs so it never has to query back.
type ApplicationSubmitted struct {
	JobID         uint   `json:"job_id"`
	JobTitle      string `json:"job_title"`
	ApplicantID   uint   `json:"applicant_id"`
	ApplicantName string `json:"applicant_name"`
	EmployerEmail string `json:"employer_email"`
	EmployerName  string `json:"employer_name"`
}

type Publisher interface {
	PublishApplicationSubmitted(event ApplicationSubmitted) error
	Close() error
}

type amqpPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(url string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		ApplicationSubmittedQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &amqpPublisher{conn: conn, channel: channel}, nil
}

func (p *amqpPublisher) PublishApplicationSubmitted(event ApplicationSubmitted) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.channel.Publish(
		"",                        // default exchange
		ApplicationSubmittedQueue, // routing key
		false,                     // mandatory
		false,                     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (p *amqpPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
