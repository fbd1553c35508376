package order_status_changed

import "github.com/IBM/sarama"

func (h *Handler) ProcessMessage(sess session, message *sarama.ConsumerMessage) bool {
	return h.messageProcessing(sess, message)
}
