package metrics

import (
	"sync"
	"time"

	"github.com/Trinoooo/teledir/consts"
	"github.com/Trinoooo/teledir/errs"
	"github.com/Trinoooo/teledir/logs"
	"github.com/bytedance/gopkg/util/gopool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

const (
	resultSuccess = "success"
	resultFailed  = "failed"
)

var metricsLogger = logs.Component(consts.ComponentMetrics)

// Helper 电话簿操作指标，实现 directory.Observer
type Helper struct {
	Registry     *prometheus.Registry
	OperationCnt *prometheus.CounterVec // 按操作和结果统计次数
	Records      prometheus.Gauge       // 当前记录条数

	pusher   *push.Pusher
	interval time.Duration
	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{} // done 推送协程退出，未启动推送时为nil
}

func NewHelper() *Helper {
	operationCnt := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "teledir_operations_total",
		Help: "directory operations by kind and result.",
	}, []string{"op", "result"})
	records := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "teledir_records",
		Help: "number of records in the directory file.",
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		operationCnt,
		records,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Helper{
		Registry:     registry,
		OperationCnt: operationCnt,
		Records:      records,
		stopChan:     make(chan struct{}),
	}
}

func (h *Helper) ObserveOp(op string, err error) {
	result := resultSuccess
	if err != nil {
		result = resultFailed
	}
	h.OperationCnt.WithLabelValues(op, result).Inc()
}

func (h *Helper) SetRecords(n int) {
	h.Records.Set(float64(n))
}

// StartPush 定期推送到pushgateway，url为空时不推送
func (h *Helper) StartPush(url string, interval time.Duration) error {
	if url == "" {
		return nil
	}

	if interval <= 0 {
		e := errs.NewInvalidParamErr()
		metricsLogger.Error(e.Error(), zap.String(consts.LogFieldParams, "interval"), zap.Duration(consts.LogFieldValue, interval))
		return e
	}

	if h.done != nil {
		return nil
	}

	h.pusher = push.New(url, "teledir").Gatherer(h.Registry)
	h.interval = interval
	h.done = make(chan struct{})
	gopool.Go(h.pushLoop)
	return nil
}

func (h *Helper) pushLoop() {
	defer close(h.done)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-h.stopChan:
			h.push()
			return
		case <-ticker.C:
			h.push()
		}
	}
}

func (h *Helper) push() {
	if err := h.pusher.Add(); err != nil {
		metricsLogger.Warn("prometheus pusher push failed", zap.Error(err))
	}
}

// Stop 停止推送，退出前做最后一次推送
func (h *Helper) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
	if h.done != nil {
		<-h.done
	}
}
