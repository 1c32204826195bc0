// bancictl 排班求解命令行工具：从请求文件离线复现一次求解
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/banci/banci/pkg/errors"
	"github.com/banci/banci/pkg/logger"
	"github.com/banci/banci/pkg/model"
	"github.com/banci/banci/pkg/scheduler/solver"
)

var (
	inputPath string
	unified   bool
	timeLimit time.Duration
	gap       float64
)

func main() {
	root := &cobra.Command{
		Use:   "bancictl",
		Short: "排班求解命令行工具",
	}

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "从请求文件执行一次求解并输出结果JSON",
		RunE:  runSolve,
	}
	solveCmd.Flags().StringVarP(&inputPath, "input", "i", "", "请求JSON文件路径（必填）")
	solveCmd.Flags().BoolVar(&unified, "unified", false, "使用统一流程（默认为骨架流程）")
	solveCmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "覆盖求解时间预算")
	solveCmd.Flags().Float64Var(&gap, "gap", 0.05, "统一流程的相对目标间隙")
	solveCmd.MarkFlagRequired("input")

	root.AddCommand(solveCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// solveRequest 与HTTP接口一致的请求格式
type solveRequest struct {
	StaffList        []model.Staff           `json:"staffList"`
	ShiftRequirement *model.ShiftRequirement `json:"requirements"`
	LeaveRequests    model.LeaveRequests     `json:"leaveRequests"`
	ScheduleSkeleton *model.ScheduleSkeleton `json:"skeleton"`
}

func runSolve(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Config{
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	})

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("读取请求文件失败: %w", err)
	}
	var req solveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("解析请求文件失败: %w", err)
	}
	if req.ShiftRequirement == nil {
		return fmt.Errorf("请求缺少 requirements")
	}

	opts := solver.DefaultOptions()
	opts.RelativeGap = gap
	if timeLimit > 0 {
		opts.SkeletonTimeLimit = timeLimit
		opts.UnifiedTimeLimit = timeLimit
	}
	svc := solver.NewService(opts)

	var result *model.SolveResult
	if unified {
		result, err = svc.SolveUnified(context.Background(), req.StaffList, req.ShiftRequirement, req.LeaveRequests)
	} else {
		if req.ScheduleSkeleton == nil {
			return fmt.Errorf("骨架流程需要 skeleton，或加 --unified 使用统一流程")
		}
		result, err = svc.SolveWithSkeleton(context.Background(), req.StaffList, req.ScheduleSkeleton, req.ShiftRequirement, req.LeaveRequests)
	}
	if err != nil {
		appErr := errors.AsAppError(err)
		out, _ := json.MarshalIndent(map[string]interface{}{
			"success":   false,
			"error":     appErr.Message,
			"errorType": appErr.ErrorType(),
			"details":   appErr.Fields,
		}, "", "  ")
		fmt.Println(string(out))
		os.Exit(1)
	}

	out, err := json.MarshalIndent(map[string]interface{}{
		"success":     true,
		"schedule":    result.Schedule,
		"solverStats": result.Stats,
		"warnings":    result.Warnings,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
