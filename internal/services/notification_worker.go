package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"campusconnect/internal/events"
	"campusconnect/internal/mailer"

	"github.com/streadway/amqp"
)

// NotificationWorker consumes application-submitted events and emails the
// job owner. Notifications are best-effort: a failed send is logged and the
// message acked so the queue never backs up on a broken mailbox.
type NotificationWorker struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	mail     mailer.Mailer
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewNotificationWorker(url string, mail mailer.Mailer) (*NotificationWorker, error) {
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
		events.ApplicationSubmittedQueue,
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

	return &NotificationWorker{
		conn:     conn,
		channel:  channel,
		mail:     mail,
		stopChan: make(chan struct{}),
	}, nil
}

func (w *NotificationWorker) Start() error {
	msgs, err := w.channel.Consume(
		events.ApplicationSubmittedQueue,
		"notification_worker", // consumer tag
		false,                 // auto-ack
		false,                 // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,                   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	w.wg.Add(1)
	go w.handleDeliveries(msgs)

	return nil
}

func (w *NotificationWorker) Stop() {
	close(w.stopChan)
	if w.channel != nil {
		w.channel.Close()
	}
	if w.conn != nil {
		w.conn.Close()
	}
	w.wg.Wait()
}

func (w *NotificationWorker) handleDeliveries(msgs <-chan amqp.Delivery) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			var event events.ApplicationSubmitted
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				log.Printf("notification worker: dropping malformed event: %v", err)
				msg.Nack(false, false)
				continue
			}

			subject := fmt.Sprintf("New application for %s", event.JobTitle)
			body := fmt.Sprintf(
				"Hi %s,\r\n\r\n%s has applied to your job posting \"%s\". Log in to Campus Connect to review the application.",
				event.EmployerName, event.ApplicantName, event.JobTitle,
			)

			if err := w.mail.Send(event.EmployerEmail, subject, body); err != nil {
				log.Printf("notification worker: failed to email %s: %v", event.EmployerEmail, err)
			}

			msg.Ack(false)
		}
	}
}
