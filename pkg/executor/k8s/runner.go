// Copyright (c) 2025, Hydrostack Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package k8s

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/distribution/reference"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/utils/ptr"

	"github.com/hydrostack/ras-compute/pkg/config"
	"github.com/hydrostack/ras-compute/pkg/defaults"
	raserrors "github.com/hydrostack/ras-compute/pkg/errors"
	"github.com/hydrostack/ras-compute/pkg/executor"
)

const (
	appLabel   = "app.kubernetes.io/name"
	appName    = "ras-compute"
	planLabel  = "ras.hydrostack.io/plan"
	jobPrefix  = "ras-run-"
	volumeName = "work"
)

// Runner executes solver plans as Kubernetes Jobs. It satisfies
// executor.Executor.
type Runner struct {
	clientset Interface
	image     string
	namespace string
	timeout   time.Duration
}

// NewRunner builds a Runner from the configuration, creating a Kubernetes
// client from the configured kubeconfig (or in-cluster discovery).
func NewRunner(cfg *config.Config) (*Runner, error) {
	clientset, err := buildKubeClient(cfg.Executor.Kubeconfig)
	if err != nil {
		return nil, err
	}
	return NewRunnerWithClient(clientset, cfg)
}

// NewRunnerWithClient builds a Runner around an existing client. Tests use
// this with a fake clientset.
func NewRunnerWithClient(clientset Interface, cfg *config.Config) (*Runner, error) {
	named, err := reference.ParseNormalizedNamed(cfg.Executor.Image)
	if err != nil {
		return nil, fmt.Errorf("invalid solver image reference %q: %w", cfg.Executor.Image, err)
	}

	namespace := cfg.Executor.Namespace
	if namespace == "" {
		namespace = "default"
	}

	timeout := cfg.Executor.RunTimeout
	if timeout <= 0 {
		timeout = defaults.K8sJobCompletionTimeout
	}

	return &Runner{
		clientset: clientset,
		image:     reference.FamiliarString(reference.TagNameOnly(named)),
		namespace: namespace,
		timeout:   timeout,
	}, nil
}

// Kind implements the executor.Executor interface.
func (r *Runner) Kind() config.ExecutorKind {
	return config.ExecutorK8s
}

// Execute runs the plan as a Job and waits for it to finish. A Job that ran
// and failed yields an Execution with a nonzero exit code; only cluster-level
// failures return an error. Pod logs serve as the compute messages since the
// project directory lives inside the solver image.
func (r *Runner) Execute(ctx context.Context, plan config.Plan) (*executor.Execution, error) {
	name := jobName(plan)
	start := time.Now()

	if err := r.ensureJob(ctx, name, plan); err != nil {
		return nil, raserrors.WrapWithContext(
			raserrors.ErrCodeExecutionFailed,
			"failed to create solver job",
			err,
			map[string]any{"plan": plan.Number, "job": name},
		)
	}

	slog.Debug("solver job created",
		slog.String("plan", plan.Number),
		slog.String("job", name),
		slog.String("namespace", r.namespace),
	)

	exitCode, err := r.waitForCompletion(ctx, name)
	if err != nil {
		r.cleanup(name)
		return nil, err
	}

	logs, err := r.podLogs(ctx, name)
	if err != nil {
		// Logs are the messages; a run without them is still reportable.
		slog.Warn("failed to retrieve solver pod logs",
			slog.String("job", name),
			slog.Any("error", err),
		)
		logs = ""
	}

	r.cleanup(name)

	return &executor.Execution{
		Plan:     plan,
		ExitCode: exitCode,
		Output:   logs,
		Messages: logs,
		Duration: time.Since(start),
	}, nil
}

// ensureJob deletes any leftover Job of the same name and creates a fresh one.
func (r *Runner) ensureJob(ctx context.Context, name string, plan config.Plan) error {
	propagationPolicy := metav1.DeletePropagationForeground
	err := r.clientset.BatchV1().Jobs(r.namespace).Delete(
		ctx,
		name,
		metav1.DeleteOptions{
			PropagationPolicy: &propagationPolicy,
		},
	)
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to delete existing Job: %w", err)
	}

	if err == nil {
		if waitErr := r.waitForJobDeletion(ctx, name); waitErr != nil {
			return fmt.Errorf("timeout waiting for Job deletion: %w", waitErr)
		}
	}

	createCtx, cancel := context.WithTimeout(ctx, defaults.K8sJobCreationTimeout)
	defer cancel()

	_, err = r.clientset.BatchV1().Jobs(r.namespace).
		Create(createCtx, r.buildJob(name, plan), metav1.CreateOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Job: %w", err)
	}
	return nil
}

// buildJob constructs the Job specification for a plan.
func (r *Runner) buildJob(name string, plan config.Plan) *batchv1.Job {
	labels := map[string]string{
		appLabel:  appName,
		planLabel: plan.Number,
	}

	args := make([]string, 0, len(plan.Args)+1)
	if plan.File != "" {
		args = append(args, plan.File)
	}
	args = append(args, plan.Args...)

	return &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: r.namespace,
			Labels:    labels,
		},
		Spec: batchv1.JobSpec{
			Completions:             ptr.To(int32(1)),
			Parallelism:             ptr.To(int32(1)),
			CompletionMode:          ptr.To(batchv1.NonIndexedCompletion),
			BackoffLimit:            ptr.To(int32(0)),
			TTLSecondsAfterFinished: ptr.To(int32(3600)),
			ActiveDeadlineSeconds:   ptr.To(int64(r.timeout.Seconds())),
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: labels,
				},
				Spec: corev1.PodSpec{
					RestartPolicy: corev1.RestartPolicyNever,
					Containers: []corev1.Container{
						{
							Name:  "solver",
							Image: r.image,
							Args:  args,
							VolumeMounts: []corev1.VolumeMount{
								{
									Name:      volumeName,
									MountPath: "/tmp",
								},
							},
						},
					},
					Volumes: []corev1.Volume{
						{
							Name: volumeName,
							VolumeSource: corev1.VolumeSource{
								EmptyDir: &corev1.EmptyDirVolumeSource{},
							},
						},
					},
				},
			},
		},
	}
}

// waitForJobDeletion waits for a Job to be fully removed.
func (r *Runner) waitForJobDeletion(ctx context.Context, name string) error {
	return wait.PollUntilContextTimeout(ctx, defaults.K8sJobPollInterval, defaults.K8sCleanupTimeout, true,
		func(ctx context.Context) (bool, error) {
			_, err := r.clientset.BatchV1().Jobs(r.namespace).
				Get(ctx, name, metav1.GetOptions{})
			if apierrors.IsNotFound(err) {
				return true, nil
			}
			if err != nil {
				return false, err
			}
			return false, nil
		},
	)
}

// waitForCompletion polls the Job until it reaches a terminal condition.
// Returns exit code 0 on JobComplete and 1 on JobFailed.
func (r *Runner) waitForCompletion(ctx context.Context, name string) (int, error) {
	exitCode := 0
	err := wait.PollUntilContextTimeout(ctx, defaults.K8sJobPollInterval, r.timeout, true,
		func(ctx context.Context) (bool, error) {
			job, err := r.clientset.BatchV1().Jobs(r.namespace).
				Get(ctx, name, metav1.GetOptions{})
			if err != nil {
				return false, err
			}
			for _, condition := range job.Status.Conditions {
				if condition.Status != corev1.ConditionTrue {
					continue
				}
				switch condition.Type {
				case batchv1.JobComplete:
					return true, nil
				case batchv1.JobFailed:
					exitCode = 1
					return true, nil
				}
			}
			return false, nil
		},
	)
	if err != nil {
		if wait.Interrupted(err) {
			return 0, raserrors.WrapWithContext(
				raserrors.ErrCodeTimeout,
				"timeout waiting for solver job completion",
				err,
				map[string]any{"job": name, "timeout": r.timeout.String()},
			)
		}
		return 0, raserrors.Wrap(
			raserrors.ErrCodeExecutionFailed,
			"failed waiting for solver job",
			err,
		)
	}
	return exitCode, nil
}

// podLogs retrieves the logs of the Job's pod.
func (r *Runner) podLogs(ctx context.Context, name string) (string, error) {
	pods, err := r.clientset.CoreV1().Pods(r.namespace).List(ctx, metav1.ListOptions{
		LabelSelector: fmt.Sprintf("%s=%s", appLabel, appName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to list Pods: %w", err)
	}

	// Match only on the job-name label; pod-name prefixes are ambiguous
	// when one job name is a prefix of another ("ras-run-1", "ras-run-10").
	var pod *corev1.Pod
	for i := range pods.Items {
		if pods.Items[i].Labels["job-name"] == name {
			pod = &pods.Items[i]
			break
		}
	}
	if pod == nil {
		return "", fmt.Errorf("no Pods found for Job %s", name)
	}

	req := r.clientset.CoreV1().Pods(r.namespace).GetLogs(pod.Name, &corev1.PodLogOptions{})
	logs, err := req.Stream(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to stream logs: %w", err)
	}
	defer logs.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, logs); err != nil {
		return "", fmt.Errorf("failed to read logs: %w", err)
	}
	return buf.String(), nil
}

// cleanup deletes the Job on a fresh context so a canceled run still cleans
// up after itself. Failures are logged, not returned.
func (r *Runner) cleanup(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), defaults.K8sCleanupTimeout)
	defer cancel()

	propagationPolicy := metav1.DeletePropagationForeground
	err := r.clientset.BatchV1().Jobs(r.namespace).Delete(
		ctx,
		name,
		metav1.DeleteOptions{
			PropagationPolicy: &propagationPolicy,
		},
	)
	if err != nil && !apierrors.IsNotFound(err) {
		slog.Warn("failed to delete solver job",
			slog.String("job", name),
			slog.Any("error", err),
		)
	}
}

// jobName derives a DNS-safe Job name from the plan number.
func jobName(plan config.Plan) string {
	n := strings.ToLower(plan.Number)
	var b strings.Builder
	for _, c := range n {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-':
			b.WriteRune(c)
		default:
			b.WriteRune('-')
		}
	}
	return jobPrefix + strings.Trim(b.String(), "-")
}
