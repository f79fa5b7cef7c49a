package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/MixinNetwork/mixin/logger"
	"github.com/MixinNetwork/nfc/computing"
	"github.com/MixinNetwork/nfc/config"
	"github.com/MixinNetwork/nfc/ledger"
	"github.com/fox-one/mixin-sdk-go"
)

// MessengerWorker takes request envelopes from Mixin messages and tells
// creators about their new collections.
type MessengerWorker struct {
	client *mixin.Client
	chain  *ledger.Chain
}

func NewMessengerWorker(ctx context.Context, chain *ledger.Chain, conf *config.Configuration) *MessengerWorker {
	s := &mixin.Keystore{
		ClientID:   conf.App.ClientId,
		SessionID:  conf.App.SessionId,
		PrivateKey: conf.App.PrivateKey,
		PinToken:   conf.App.PinToken,
	}
	client, err := mixin.NewFromKeystore(s)
	if err != nil {
		panic(err)
	}
	mw := &MessengerWorker{
		client: client,
		chain:  chain,
	}
	go mw.loop(ctx)
	return mw
}

func (mw *MessengerWorker) loop(ctx context.Context) {
	for {
		err := mw.client.LoopBlaze(ctx, mw)
		logger.Printf("LoopBlaze() => %v\n", err)
		if ctx.Err() != nil {
			break
		}
		time.Sleep(3 * time.Second)
	}
}

func (mw *MessengerWorker) OnMessage(ctx context.Context, msg *mixin.MessageView, userId string) error {
	if msg.Category != mixin.MessageCategoryPlainText {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(msg.Data)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(msg.Data)
	}
	if err != nil {
		return nil
	}
	envelope := strings.TrimSpace(string(data))
	req, err := mw.chain.Submit(ctx, msg.UserID, envelope, "")
	if err != nil {
		logger.Verbosef("MessengerWorker.OnMessage(%s) => %v\n", msg.MessageID, err)
		return nil
	}
	reply := fmt.Sprintf("request #%d queued", req.Sequence)
	return mw.send(ctx, msg.ConversationID, msg.UserID, msg.MessageID, reply)
}

func (mw *MessengerWorker) OnAckReceipt(ctx context.Context, msg *mixin.MessageView, userId string) error {
	return nil
}

func (mw *MessengerWorker) OnEvent(ctx context.Context, ev *computing.Event) {
	if ev.Kind != computing.EventCollectionCreated {
		return
	}
	conversationId := mixin.UniqueConversationID(mw.client.ClientID, ev.Who)
	text := fmt.Sprintf("collection %d created at block %d", ev.Collection, ev.Height)
	if ev.Worker != "" {
		text = fmt.Sprintf("%s for worker %s", text, ev.Worker)
	}
	err := mw.send(ctx, conversationId, ev.Who, ev.TraceId, text)
	if err != nil {
		logger.Printf("MessengerWorker.OnEvent(%d) => %v\n", ev.Sequence, err)
	}
}

func (mw *MessengerWorker) send(ctx context.Context, conversationId, recipientId, traceId, text string) error {
	mr := &mixin.MessageRequest{
		ConversationID: conversationId,
		RecipientID:    recipientId,
		Category:       mixin.MessageCategoryPlainText,
		MessageID:      mixin.UniqueConversationID(traceId, text),
		Data:           base64.RawURLEncoding.EncodeToString([]byte(text)),
	}
	return mw.client.SendMessage(ctx, mr)
}
