package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartTenantConsumer connects to RabbitMQ, declares both tenant
// lifecycle queues (durable), and consumes them forever.  Each message
// is appended to logs/tenant.log as a single human-readable line.  The
// loop reconnects with backoff on broker failure; processing errors
// reject the message without requeueing so a poison message cannot
// spin the consumer.
func StartTenantConsumer() error {
	url := brokerURL()

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("tenant-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn); err != nil {
			log.Printf("tenant-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("tenant-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{checkedInQueue, checkedOutQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	in, err := ch.Consume(checkedInQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", checkedInQueue, err)
	}
	out, err := ch.Consume(checkedOutQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", checkedOutQueue, err)
	}

	for {
		var d amqp.Delivery
		var ok bool
		var handle func([]byte) error

		select {
		case d, ok = <-in:
			handle = handleCheckedIn
		case d, ok = <-out:
			handle = handleCheckedOut
		}
		if !ok {
			return errors.New("deliveries channel closed")
		}
		if err := handle(d.Body); err != nil {
			log.Printf("tenant-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
}

func handleCheckedIn(body []byte) error {
	var ev TenantCheckedInEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Tenant checked in | tenant_id=%d | name=%q | owner_id=%d | pg_id=%d | bed_id=%d | monthly_rent=%.2f | first_month_due=%.2f\n",
		ev.CheckInDate, ev.TenantID, ev.TenantName, ev.OwnerID, ev.PGID, ev.BedID, ev.MonthlyRent, ev.FirstDue)
	return appendLog(line)
}

func handleCheckedOut(body []byte) error {
	var ev TenantCheckedOutEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Tenant checked out | tenant_id=%d | name=%q | owner_id=%d | bed_id=%d\n",
		ev.CheckOutDate, ev.TenantID, ev.TenantName, ev.OwnerID, ev.BedID)
	return appendLog(line)
}

func appendLog(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "tenant.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
