package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationSender é quem de fato avisa o vendedor (hoje: email).
type NotificationSender interface {
	SendLeadAssigned(toEmail, toName, leadName, leadStatus string) error
}

type Worker struct {
	Channel *amqp.Channel
	Sender  NotificationSender
}

func NewWorker(ch *amqp.Channel, sender NotificationSender) *Worker {
	return &Worker{
		Channel: ch,
		Sender:  sender,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadAssignedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Lead %q atribuído para %s", payload.LeadName, payload.AssigneeName)

			if err := w.Sender.SendLeadAssigned(payload.AssigneeEmail, payload.AssigneeName, payload.LeadName, payload.LeadStatus); err != nil {
				log.Printf("❌ [WORKER] Erro ao notificar: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] %s notificado sobre o lead %q", payload.AssigneeName, payload.LeadName)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}
