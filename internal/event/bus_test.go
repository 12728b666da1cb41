package event

import (
	"reflect"
	"testing"
)

// TestNewBus 测试创建新的事件总线
func TestNewBus(t *testing.T) {
	bus := NewBus()
	if bus == nil {
		t.Fatal("NewBus() 返回 nil")
	}
	if bus.handlers == nil {
		t.Fatal("NewBus() handlers map 未初始化")
	}
}

// TestSubscribeAndPublish 测试订阅和同步发布事件
func TestSubscribeAndPublish(t *testing.T) {
	bus := NewBus()
	var received any
	bus.Subscribe(EventJumpStart, func(event any) {
		received = event
	})

	bus.Publish(EventJumpStart, JumpEvent{TimeInAir: 0})

	// 同步分发：Publish 返回时 handler 已执行
	if received != (JumpEvent{}) {
		t.Errorf("handler 收到 %v, 期望 %v", received, JumpEvent{})
	}
}

// TestPublishNoSubscribers 测试发布无订阅者的事件不会 panic
func TestPublishNoSubscribers(t *testing.T) {
	bus := NewBus()
	bus.Publish("nonexistent", "data")

	var nilBus *Bus
	nilBus.Publish(EventJumpLand, nil)
}

// TestSubscriptionOrder 测试多个订阅者按订阅顺序执行
func TestSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		bus.Subscribe("test", func(event any) {
			order = append(order, i)
		})
	}

	bus.Publish("test", "data")

	if !reflect.DeepEqual(order, []int{1, 2, 3}) {
		t.Errorf("执行顺序 %v, 期望 [1 2 3]", order)
	}
}

// TestHandlerPanicRecovered 测试 handler panic 不影响后续 handler
func TestHandlerPanicRecovered(t *testing.T) {
	bus := NewBus()
	called := false
	bus.Subscribe("test", func(event any) {
		panic("boom")
	})
	bus.Subscribe("test", func(event any) {
		called = true
	})

	bus.Publish("test", nil)

	if !called {
		t.Error("panic 之后的 handler 未被调用")
	}
}

// TestDifferentEvents 测试不同事件互不干扰
func TestDifferentEvents(t *testing.T) {
	bus := NewBus()
	var starts, lands int
	bus.Subscribe(EventJumpStart, func(event any) { starts++ })
	bus.Subscribe(EventJumpLand, func(event any) { lands++ })

	bus.Publish(EventJumpStart, JumpEvent{})
	bus.Publish(EventJumpStart, JumpEvent{})
	bus.Publish(EventJumpLand, JumpEvent{Grounded: true})

	if starts != 2 || lands != 1 {
		t.Errorf("starts=%d lands=%d, 期望 2 和 1", starts, lands)
	}
}
