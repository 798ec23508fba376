package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// APIBenchmark 针对学生接口的黑盒压测工具
type APIBenchmark struct {
	BaseURL     string
	Concurrency int
	Requests    int
	Client      *http.Client
}

// BenchmarkResult 汇总一轮压测的耗时和状态码分布
type BenchmarkResult struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	TotalTime      time.Duration `json:"total_time"`
	AverageTime    time.Duration `json:"average_time"`
	MinTime        time.Duration `json:"min_time"`
	MaxTime        time.Duration `json:"max_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

// requestResult 单个请求的结果
type requestResult struct {
	duration   time.Duration
	statusCode int
	err        error
}

// NewAPIBenchmark 创建新的API压测实例
func NewAPIBenchmark(baseURL string, concurrency, requests int) *APIBenchmark {
	return &APIBenchmark{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RunGET 对只读接口执行GET压测
func (b *APIBenchmark) RunGET(path string) *BenchmarkResult {
	return b.run(http.MethodGet, path, nil)
}

// RunCreateStudents 并发创建学生，每个请求的姓名和房间号都不同。
// 每次成功的创建都会消费一个序列号，这是分配器在真实并发下的负载来源。
func (b *APIBenchmark) RunCreateStudents(path string) *BenchmarkResult {
	return b.run(http.MethodPost, path, func(i int) []byte {
		payload := map[string]interface{}{
			"name": fmt.Sprintf("Load Test Student %d", i),
			"room": fmt.Sprintf("L%03d", i%200),
		}
		data, _ := json.Marshal(payload)
		return data
	})
}

// run 执行压测；bodyFor为nil时发送空请求体，否则每个请求单独生成载荷
func (b *APIBenchmark) run(method, path string, bodyFor func(i int) []byte) *BenchmarkResult {
	url := b.BaseURL + path
	results := make(chan requestResult, b.Requests)
	var wg sync.WaitGroup
	limiter := make(chan struct{}, b.Concurrency)

	startTime := time.Now()

	for i := 0; i < b.Requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			limiter <- struct{}{}
			defer func() { <-limiter }()

			var body []byte
			if bodyFor != nil {
				body = bodyFor(i)
			}

			start := time.Now()
			req, err := http.NewRequest(method, url, bytes.NewReader(body))
			if err != nil {
				results <- requestResult{err: err}
				return
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := b.Client.Do(req)
			if err != nil {
				results <- requestResult{err: err}
				return
			}
			defer resp.Body.Close()

			results <- requestResult{
				duration:   time.Since(start),
				statusCode: resp.StatusCode,
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return b.collect(method, url, results, startTime)
}

// collect 汇总所有请求的结果
func (b *APIBenchmark) collect(method, url string, results <-chan requestResult, startTime time.Time) *BenchmarkResult {
	var minTime time.Duration = 1<<63 - 1
	var maxTime time.Duration
	var totalTime time.Duration
	successCount := 0
	failureCount := 0
	statusCodes := make(map[int]int)
	var errors []string

	for result := range results {
		if result.err != nil {
			failureCount++
			errors = append(errors, result.err.Error())
			continue
		}

		totalTime += result.duration
		if result.duration < minTime {
			minTime = result.duration
		}
		if result.duration > maxTime {
			maxTime = result.duration
		}

		statusCodes[result.statusCode]++
		if result.statusCode >= 200 && result.statusCode < 300 {
			successCount++
		} else {
			failureCount++
		}
	}

	totalElapsed := time.Since(startTime)
	averageTime := time.Duration(0)
	if successCount+failureCount > 0 {
		averageTime = totalTime / time.Duration(successCount+failureCount)
	}

	return &BenchmarkResult{
		URL:            url,
		Method:         method,
		Concurrency:    b.Concurrency,
		TotalRequests:  b.Requests,
		SuccessCount:   successCount,
		FailureCount:   failureCount,
		TotalTime:      totalElapsed,
		AverageTime:    averageTime,
		MinTime:        minTime,
		MaxTime:        maxTime,
		RequestsPerSec: float64(b.Requests) / totalElapsed.Seconds(),
		StatusCodes:    statusCodes,
		Errors:         errors,
	}
}

// PrintResult 打印压测结果
func (r *BenchmarkResult) PrintResult() {
	fmt.Printf("压测结果:\n")
	fmt.Printf("URL: %s\n", r.URL)
	fmt.Printf("方法: %s\n", r.Method)
	fmt.Printf("并发数: %d\n", r.Concurrency)
	fmt.Printf("总请求数: %d\n", r.TotalRequests)
	fmt.Printf("成功请求数: %d\n", r.SuccessCount)
	fmt.Printf("失败请求数: %d\n", r.FailureCount)
	fmt.Printf("总耗时: %s\n", r.TotalTime)
	fmt.Printf("平均耗时: %s\n", r.AverageTime)
	fmt.Printf("最小耗时: %s\n", r.MinTime)
	fmt.Printf("最大耗时: %s\n", r.MaxTime)
	fmt.Printf("每秒请求数: %.2f\n", r.RequestsPerSec)
	fmt.Printf("状态码分布:\n")
	for code, count := range r.StatusCodes {
		fmt.Printf("  %d: %d\n", code, count)
	}
	if len(r.Errors) > 0 {
		fmt.Printf("错误信息 (最多显示5个):\n")
		for i, err := range r.Errors {
			if i >= 5 {
				fmt.Printf("  ... 还有 %d 个错误\n", len(r.Errors)-5)
				break
			}
			fmt.Printf("  %s\n", err)
		}
	}
}
